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

package model

import (
	"time"

	"github.com/migrata/compass/internal/questionnaire/constants"
)

// QuestionnaireResponse is one answered field of a submission. Immutable once
// created except for validation status transitions performed downstream.
type QuestionnaireResponse struct {
	ID               string                     `json:"id"`
	CollectionFlowID string                     `json:"collection_flow_id"`
	QuestionnaireID  string                     `json:"questionnaire_id"`
	GapID            string                     `json:"gap_id,omitempty"`
	AssetID          string                     `json:"asset_id,omitempty"`
	QuestionID       string                     `json:"question_id"`
	ResponseValue    string                     `json:"response_value"`
	ResponseType     string                     `json:"response_type"`
	ValidationStatus constants.ValidationStatus `json:"validation_status"`
	RespondedBy      string                     `json:"responded_by"`
	RespondedAt      time.Time                  `json:"responded_at"`
}

// SubmissionMetadata carries the caller-supplied context of one submission.
type SubmissionMetadata struct {
	// AssetID is the flow-level default asset for fields without their own
	// composite asset prefix.
	AssetID string `json:"asset_id,omitempty"`
	// CompletionPercentage is the caller-reported share of answered questions,
	// in the range 0.0 to 1.0.
	CompletionPercentage float64 `json:"completion_percentage,omitempty"`
}
