package model

import (
	"fmt"
	"strconv"
	"strings"
)

// TablePrecision is the number of decimals used for tabulated points.
const TablePrecision = 1

// Table renders the operating points as tab separated rows, with a header line.
// Missing efficiencies are left blank.
func Table(ops []OperatingPoint) string {
	var sb strings.Builder
	sb.WriteString("No\tFlow\tHead\tEfficiency\n")
	for i, op := range ops {
		e := ""
		if op.Efficiency != nil {
			e = format(*op.Efficiency)
		}
		sb.WriteString(fmt.Sprintf("%d\t%s\t%s\t%s\n", i+1, format(op.Flow), format(op.Head), e))
	}
	return sb.String()
}

func format(f float64) string {
	return strconv.FormatFloat(f, 'f', TablePrecision, 64)
}
