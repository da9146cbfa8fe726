/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   "))
	assert.True(t, IsBlank("\t\n"))
	assert.False(t, IsBlank("x"))
	assert.False(t, IsBlank("  x  "))
}

func TestContainsString(t *testing.T) {
	items := []string{"alpha", "beta"}
	assert.True(t, ContainsString(items, "alpha"))
	assert.False(t, ContainsString(items, "gamma"))
	assert.False(t, ContainsString(nil, "alpha"))
}

func TestAppendUnique(t *testing.T) {
	items := AppendUnique(nil, "alpha")
	items = AppendUnique(items, "beta")
	items = AppendUnique(items, "alpha")

	assert.Equal(t, []string{"alpha", "beta"}, items)
}

func TestMergeStringMaps(t *testing.T) {
	dst := map[string]string{"a": "1", "b": "2"}
	merged := MergeStringMaps(dst, map[string]string{"b": "3", "c": "4"})

	assert.Equal(t, "1", merged["a"])
	assert.Equal(t, "3", merged["b"])
	assert.Equal(t, "4", merged["c"])

	merged = MergeStringMaps(nil, map[string]string{"a": "1"})
	assert.Equal(t, "1", merged["a"])
}

func TestGenerateUUID(t *testing.T) {
	first := GenerateUUID()
	second := GenerateUUID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
	assert.True(t, IsValidUUID(first))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("3fa85f64-5717-4562-b3fc-2c963f66afa6"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "value", SanitizeString("  value  "))
	assert.Equal(t, "linebreaks", SanitizeString("line\nbreaks\r"))
}
