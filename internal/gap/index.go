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

// Package gap provides indexing and resolution of collection data gaps.
package gap

import (
	"github.com/migrata/compass/internal/gap/model"
	"github.com/migrata/compass/internal/system/log"
	sysutils "github.com/migrata/compass/internal/system/utils"
)

// GapIndex indexes pending data gaps for a flow by field name for O(1) lookup
// during response processing. The index is always rebuilt from pending-only
// gaps, so a gap that has already been resolved can never be matched again.
type GapIndex struct {
	byField map[string]*model.CollectionDataGap
}

// NewGapIndex builds an index over the given gaps. Gaps with a blank field
// name are skipped and logged; such a gap can never be resolved automatically.
func NewGapIndex(gaps []model.CollectionDataGap) *GapIndex {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "GapIndex"))

	byField := make(map[string]*model.CollectionDataGap, len(gaps))
	for i := range gaps {
		g := &gaps[i]
		if sysutils.IsBlank(g.FieldName) {
			logger.Warn("Skipping gap with blank field name",
				log.String(log.LoggerKeyGapID, g.ID),
				log.String(log.LoggerKeyFlowID, g.FlowID))
			continue
		}
		byField[g.FieldName] = g
	}

	return &GapIndex{byField: byField}
}

// Lookup returns the pending gap indexed under the given field name, if any.
func (idx *GapIndex) Lookup(fieldName string) (*model.CollectionDataGap, bool) {
	g, ok := idx.byField[fieldName]
	return g, ok
}

// Size returns the number of indexed gaps.
func (idx *GapIndex) Size() int {
	return len(idx.byField)
}

// AnswerableField reports whether a submitted field carries a usable answer.
// Blank field identifiers and nil or empty-string values never resolve gaps
// and never emit response records.
func AnswerableField(fieldID string, value any) bool {
	if sysutils.IsBlank(fieldID) {
		return false
	}
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok && s == "" {
		return false
	}
	return true
}
