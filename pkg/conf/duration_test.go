// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration(t *testing.T) {
	d := new(Duration)
	require.NoError(t, d.UnmarshalText([]byte("72h3m0.5s")))
	assert.Equal(t, Duration(259380500000000), *d)
	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, []byte("72h3m0.5s"), b)

	assert.Error(t, d.UnmarshalText([]byte("ten minutes")))
}

func TestDurationYAML(t *testing.T) {
	r := &Results{}
	require.NoError(t, yaml.Unmarshal([]byte("ttl: 90s\n"), r))
	assert.Equal(t, "1m30s", r.TTL.String())
	b, err := yaml.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, "ttl: 1m30s\n", string(b))
}
