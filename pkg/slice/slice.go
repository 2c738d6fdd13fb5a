// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package slice

import (
	"fmt"
	"strings"
)

// DuplicatedString returns the first string that appears more than once in s,
// or an empty string if every element is unique.
func DuplicatedString(s []string) string {
	m := make(map[string]struct{}, len(s))
	for _, k := range s {
		if _, ok := m[k]; ok {
			return k
		}
		m[k] = struct{}{}
	}
	return ""
}

// Intersect returns strings present in both s1 and s2, in the order they
// appear in s1.
func Intersect(s1, s2 []string) []string {
	m := make(map[string]struct{}, len(s2))
	for _, k := range s2 {
		m[k] = struct{}{}
	}
	res := []string{}
	for _, k := range s1 {
		if _, ok := m[k]; ok {
			res = append(res, k)
			delete(m, k)
		}
	}
	return res
}

func IndicesToValues(vals []string, keys []int) []string {
	res := make([]string, 0, len(keys))
	for _, k := range keys {
		res = append(res, vals[k])
	}
	return res
}

func KeyIndices(columns, keys []string) ([]int, error) {
	res := make([]int, 0, len(keys))
	for _, k := range keys {
		found := false
		for i, c := range columns {
			if c == k {
				res = append(res, i)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf(`key %q not found in string slice`, k)
		}
	}
	return res, nil
}

func StringSliceEqual(sl1, sl2 []string) bool {
	if len(sl1) != len(sl2) {
		return false
	}
	for i, v := range sl1 {
		if v != sl2[i] {
			return false
		}
	}
	return true
}

// SplitNonEmpty splits s by sep, trims spaces and drops empty parts.
func SplitNonEmpty(s, sep string) []string {
	res := []string{}
	for _, v := range strings.Split(s, sep) {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	return res
}
