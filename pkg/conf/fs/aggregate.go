// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conffs

import (
	"reflect"

	"github.com/imdario/mergo"
	"github.com/wrgl/csvdedup/pkg/conf"
)

type ptrTransformer struct {
}

func (t *ptrTransformer) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	if typ.Kind() == reflect.Ptr && typ.Elem().Kind() != reflect.Struct {
		return func(dst, src reflect.Value) error {
			if dst.CanSet() && !src.IsNil() {
				dst.Set(src)
			}
			return nil
		}
	}
	return nil
}

// mergeOverDefaults returns the default config overridden by every non-empty
// field of c
func mergeOverDefaults(c *conf.Config) (*conf.Config, error) {
	res := conf.Default()
	if err := mergo.Merge(res, c, mergo.WithOverride, mergo.WithTransformers(&ptrTransformer{})); err != nil {
		return nil, err
	}
	return res, nil
}
