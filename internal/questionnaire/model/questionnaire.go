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

// Package model defines the data structures for the questionnaire domain.
package model

import (
	"strings"
	"time"

	"github.com/migrata/compass/internal/questionnaire/constants"
	sysutils "github.com/migrata/compass/internal/system/utils"
)

// TargetGap is a gap reference embedded in a generated question.
type TargetGap struct {
	GapID   string `json:"gap_id"`
	AssetID string `json:"asset_id,omitempty"`
	Field   string `json:"field,omitempty"`
}

// Question is one generated question inside an adaptive questionnaire.
type Question struct {
	ID         string      `json:"id"`
	Text       string      `json:"text"`
	FieldID    string      `json:"field_id,omitempty"`
	TargetGaps []TargetGap `json:"target_gaps,omitempty"`
}

// AdaptiveQuestionnaire is one generated question set for a flow, optionally
// scoped to a single asset.
type AdaptiveQuestionnaire struct {
	ID                 string                         `json:"id"`
	FlowID             string                         `json:"flow_id"`
	Type               constants.QuestionnaireType    `json:"type"`
	AssetID            string                         `json:"asset_id,omitempty"`
	Description        string                         `json:"description,omitempty"`
	CompletionStatus   constants.CompletionStatus     `json:"completion_status"`
	GenerationReason   constants.GenerationReason     `json:"generation_reason,omitempty"`
	Questions          []Question                     `json:"questions,omitempty"`
	ResponsesCollected map[string]interface{}         `json:"responses_collected,omitempty"`
	CompletedAt        *time.Time                     `json:"completed_at,omitempty"`
	CreatedAt          time.Time                      `json:"created_at,omitempty"`
}

// TargetAssetIDs resolves which assets the questionnaire targets: the direct
// asset reference when present, otherwise the asset identifiers embedded in
// its questions' gap targets. Legacy rows may only carry the latter.
func (q *AdaptiveQuestionnaire) TargetAssetIDs() []string {
	if !sysutils.IsBlank(q.AssetID) {
		return []string{q.AssetID}
	}

	ids := make([]string, 0)
	for _, question := range q.Questions {
		for _, tg := range question.TargetGaps {
			if sysutils.IsBlank(tg.AssetID) {
				continue
			}
			ids = sysutils.AppendUnique(ids, tg.AssetID)
		}
	}
	return ids
}

// BenignFailure reports whether a failed questionnaire really means the asset
// had nothing left to ask. The structured generation reason is authoritative;
// the description sniff covers only legacy rows that predate the reason field.
func (q *AdaptiveQuestionnaire) BenignFailure() bool {
	if q.CompletionStatus != constants.CompletionStatusFailed {
		return false
	}
	if q.GenerationReason == constants.GenerationReasonNoGapsFound {
		return true
	}
	if q.GenerationReason != constants.GenerationReasonNone {
		return false
	}

	if len(q.Questions) != 0 {
		return false
	}
	desc := strings.ToLower(q.Description)
	return strings.Contains(desc, "no true gaps") || strings.Contains(desc, "generation failed")
}
