package teidx

import "strings"

// passesFilter applies the optional family-accession and NRPH predicates
// to one raw record line (spec §4.6). A nil family disables the family
// check; nrph=false disables the NRPH check.
func passesFilter(line string, family *string, nrph bool) bool {
	fields := strings.Fields(line)
	if family != nil {
		if len(fields) < 4 {
			return false
		}
		acc := fields[3]
		if i := strings.IndexByte(acc, '.'); i >= 0 {
			acc = acc[:i]
		}
		if acc != *family {
			return false
		}
	}
	if nrph {
		if len(fields) == 0 || fields[len(fields)-1] != "1" {
			return false
		}
	}
	return true
}
