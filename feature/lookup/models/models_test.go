package models_test

import (
	"reflect"
	"strings"
	"testing"

	"broad-babel/feature/lookup"
	"broad-babel/feature/lookup/models"

	"github.com/stretchr/testify/assert"
)

func TestNameModel(t *testing.T) {
	m := models.Name{}
	assert.Equal(t, lookup.DefaultTable, m.TableName())

	// The model and the default allow-list describe the same columns.
	var cols []lookup.Column
	typ := reflect.TypeOf(m)
	for i := 0; i < typ.NumField(); i++ {
		for _, part := range strings.Split(typ.Field(i).Tag.Get("gorm"), ";") {
			if name, ok := strings.CutPrefix(part, "column:"); ok {
				cols = append(cols, lookup.Column(name))
			}
		}
	}
	assert.Equal(t, lookup.DefaultColumns, cols)
}
