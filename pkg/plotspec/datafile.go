package plotspec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadColumns reads whitespace-separated numeric columns in gnuplot's data
// layout. Blank lines and lines starting with '#' are skipped. Columns are
// 1-based; every row must contain every requested column.
func ReadColumns(r io.Reader, columns ...int) ([][]float64, error) {
	for _, c := range columns {
		if c < 1 {
			return nil, fmt.Errorf("%w: column %d out of range", ErrDataFile, c)
		}
	}

	out := make([][]float64, len(columns))
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		for i, c := range columns {
			if c > len(fields) {
				return nil, fmt.Errorf("%w: line %d has %d columns, need %d", ErrDataFile, line, len(fields), c)
			}
			v, err := strconv.ParseFloat(fields[c-1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %v", ErrDataFile, line, c, err)
			}
			out[i] = append(out[i], v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// ReadXYFile reads two columns of a data file as x and y values
func ReadXYFile(path string, xcol, ycol int) ([]float64, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	cols, err := ReadColumns(f, xcol, ycol)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return cols[0], cols[1], nil
}

// ReadColumnFile reads a single column of a data file
func ReadColumnFile(path string, col int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cols, err := ReadColumns(f, col)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cols[0], nil
}
