package structure

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// SplitModels splits an ensemble into one coordinate file per MODEL/ENDMDL
// block. Records outside any block (headers, CONECT, END) are dropped from
// the split files. Input without MODEL records is returned whole as a single model.
func SplitModels(r io.Reader) ([][]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read coordinates: %w", err)
	}

	var (
		models  [][]byte
		current *bytes.Buffer
	)
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "MODEL"):
			if current != nil {
				models = append(models, current.Bytes())
			}
			current = &bytes.Buffer{}
		case strings.HasPrefix(line, "ENDMDL"):
			if current != nil {
				current.WriteString("END\n")
				models = append(models, current.Bytes())
				current = nil
			}
		case current != nil:
			current.WriteString(line)
			current.WriteByte('\n')
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan coordinates: %w", err)
	}
	if current != nil {
		models = append(models, current.Bytes())
	}
	if len(models) == 0 {
		return [][]byte{data}, nil
	}
	return models, nil
}

// ModelFileName names the i-th (zero-based) model split out of file,
// e.g. 1abc.pdb -> 1abc_m01.pdb.
func ModelFileName(file string, i int) string {
	ext := filepath.Ext(file)
	stem := strings.TrimSuffix(filepath.Base(file), ext)
	if ext == "" {
		ext = ".pdb"
	}
	return fmt.Sprintf("%s_m%02d%s", stem, i+1, ext)
}
