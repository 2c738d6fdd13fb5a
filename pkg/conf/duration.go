// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conf

import "time"

// Duration is a time.Duration that reads and writes as text such as "10m"
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(data []byte) error {
	o, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}
	*d = Duration(o)
	return nil
}
