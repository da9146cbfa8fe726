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

// Package model defines the data structures for collection data gaps.
package model

import "time"

// ResolutionStatus defines the resolution state of a collection data gap.
type ResolutionStatus string

const (
	// ResolutionStatusPending indicates the gap has not been resolved yet.
	ResolutionStatusPending ResolutionStatus = "pending"
	// ResolutionStatusResolved indicates the gap has been resolved.
	ResolutionStatusResolved ResolutionStatus = "resolved"
)

// ResolvedByManualSubmission marks gaps resolved through a questionnaire submission.
const ResolvedByManualSubmission = "manual_submission"

// CollectionDataGap represents one detected missing field for a collection flow.
// Gaps are created by the gap-scanning collaborator and are never deleted;
// resolution only flips the status and stamps the resolution metadata.
type CollectionDataGap struct {
	ID               string           `json:"id"`
	FlowID           string           `json:"flowId"`
	AssetID          string           `json:"assetId,omitempty"`
	FieldName        string           `json:"fieldName"`
	Description      string           `json:"description,omitempty"`
	ResolutionStatus ResolutionStatus `json:"resolutionStatus"`
	ResolvedAt       *time.Time       `json:"resolvedAt,omitempty"`
	ResolvedBy       string           `json:"resolvedBy,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
}
