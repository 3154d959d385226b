package embedding

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
)

// readNpy reads a 2-D numpy array saved with np.save: little-endian
// float32 or float64, C order. That is exactly what the embedding
// training pipeline emits; anything else is rejected.
func readNpy(path string) ([][]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("embedding: read artifact: %w", err)
	}
	if len(data) < 10 || string(data[:6]) != "\x93NUMPY" {
		return nil, fmt.Errorf("embedding: %s is not an npy file", path)
	}
	major := data[6]
	var headerLen, headerStart int
	switch major {
	case 1:
		headerLen = int(binary.LittleEndian.Uint16(data[8:10]))
		headerStart = 10
	case 2, 3:
		if len(data) < 12 {
			return nil, fmt.Errorf("embedding: truncated npy header in %s", path)
		}
		headerLen = int(binary.LittleEndian.Uint32(data[8:12]))
		headerStart = 12
	default:
		return nil, fmt.Errorf("embedding: unsupported npy version %d in %s", major, path)
	}
	if headerStart+headerLen > len(data) {
		return nil, fmt.Errorf("embedding: truncated npy header in %s", path)
	}
	header := string(data[headerStart : headerStart+headerLen])
	body := data[headerStart+headerLen:]

	descr, fortran, shape, err := parseNpyHeader(header)
	if err != nil {
		return nil, fmt.Errorf("embedding: %s: %w", path, err)
	}
	if fortran {
		return nil, fmt.Errorf("embedding: fortran-order npy not supported (%s)", path)
	}
	if len(shape) != 2 {
		return nil, fmt.Errorf("embedding: want 2-D embedding matrix, got shape %v (%s)", shape, path)
	}
	rows, cols := shape[0], shape[1]

	var itemSize int
	switch descr {
	case "<f4":
		itemSize = 4
	case "<f8":
		itemSize = 8
	default:
		return nil, fmt.Errorf("embedding: unsupported npy dtype %q (%s)", descr, path)
	}
	if len(body) < rows*cols*itemSize {
		return nil, fmt.Errorf("embedding: npy body too short in %s", path)
	}

	matrix := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		row := make([]float64, cols)
		base := r * cols * itemSize
		for c := 0; c < cols; c++ {
			off := base + c*itemSize
			if itemSize == 4 {
				row[c] = float64(math.Float32frombits(binary.LittleEndian.Uint32(body[off:])))
			} else {
				row[c] = math.Float64frombits(binary.LittleEndian.Uint64(body[off:]))
			}
		}
		matrix[r] = row
	}
	return matrix, nil
}

var (
	npyDescrRe   = regexp.MustCompile(`'descr':\s*'([^']+)'`)
	npyFortranRe = regexp.MustCompile(`'fortran_order':\s*(True|False)`)
	npyShapeRe   = regexp.MustCompile(`'shape':\s*\(([^)]*)\)`)
	npyIntRe     = regexp.MustCompile(`\d+`)
)

func parseNpyHeader(header string) (descr string, fortran bool, shape []int, err error) {
	dm := npyDescrRe.FindStringSubmatch(header)
	fm := npyFortranRe.FindStringSubmatch(header)
	sm := npyShapeRe.FindStringSubmatch(header)
	if dm == nil || fm == nil || sm == nil {
		return "", false, nil, fmt.Errorf("malformed npy header %q", header)
	}
	descr = dm[1]
	fortran = fm[1] == "True"
	for _, s := range npyIntRe.FindAllString(sm[1], -1) {
		n, convErr := strconv.Atoi(s)
		if convErr != nil {
			return "", false, nil, convErr
		}
		shape = append(shape, n)
	}
	return descr, fortran, shape, nil
}
