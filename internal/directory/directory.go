// Package directory loads the optional phone-number to display-name mapping
// used to label lines in the report.
package directory

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"billsplit/internal/bill"
)

// Directory maps canonical "(XXX) XXX-XXXX" phone numbers to display names.
type Directory map[string]string

// NameFor resolves a phone key to its display name, falling back to the
// phone number itself when no mapping exists.
func (d Directory) NameFor(phone string) string {
	if name, ok := d[phone]; ok {
		return name
	}
	return phone
}

// Load reads a mapping file with one "<10-digit-number>: <name>" entry per
// line. Blank lines and lines starting with # are ignored. A missing file
// is not an error: the mapping is optional and an empty Directory is
// returned. Malformed lines are skipped with a warning so one typo cannot
// take down the whole load.
func Load(path string, logger *slog.Logger) (Directory, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dir := Directory{}
	if path == "" {
		return dir, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("phone mapping file not found, names will fall back to numbers", "path", path)
			return dir, nil
		}
		return nil, fmt.Errorf("open phone mapping %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		digits, name, ok := strings.Cut(line, ":")
		if !ok {
			logger.Warn("skipping malformed mapping line", "path", path, "line", lineNo, "reason", "missing colon")
			continue
		}

		phone, ok := bill.FormatDigits(strings.TrimSpace(digits))
		if !ok {
			logger.Warn("skipping malformed mapping line", "path", path, "line", lineNo, "reason", "key is not a 10-digit number")
			continue
		}

		dir[phone] = strings.TrimSpace(name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read phone mapping %s: %w", path, err)
	}

	return dir, nil
}
