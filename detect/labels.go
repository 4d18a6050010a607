package detect

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadLabels reads the class labels the detection model was trained on from
// the given text file, one label per line in the order of the model's class
// indexes.  Blank lines are skipped so a trailing newline does not shift the
// class mapping.
func LoadLabels(file string) ([]string, error) {

	f, err := os.Open(file)

	if err != nil {
		return nil, fmt.Errorf("error opening labels file: %w", err)
	}

	defer f.Close()

	var labels []string

	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		label := strings.TrimSpace(scanner.Text())

		if label == "" {
			continue
		}

		labels = append(labels, label)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading labels file: %w", err)
	}

	if len(labels) == 0 {
		return nil, fmt.Errorf("labels file %s contains no labels", file)
	}

	return labels, nil
}
