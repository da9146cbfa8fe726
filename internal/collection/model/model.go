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

// Package model defines the data structures for the collection workflow engine.
package model

import (
	"time"

	"github.com/migrata/compass/internal/appcatalog"
	"github.com/migrata/compass/internal/collection/constants"
	qnrconstants "github.com/migrata/compass/internal/questionnaire/constants"
	"github.com/migrata/compass/internal/system/error/serviceerror"
	sysutils "github.com/migrata/compass/internal/system/utils"
)

// TenantContext scopes every collection operation to one engagement of one
// client account. Absence of any identifier is a hard validation error.
type TenantContext struct {
	ClientAccountID string `json:"client_account_id"`
	EngagementID    string `json:"engagement_id"`
	UserID          string `json:"user_id"`
}

// Validate checks that the tenant context is complete.
func (t *TenantContext) Validate() *serviceerror.ServiceError {
	if sysutils.IsBlank(t.ClientAccountID) || sysutils.IsBlank(t.EngagementID) ||
		sysutils.IsBlank(t.UserID) {
		return &constants.ErrorInvalidTenantContext
	}
	return nil
}

// QuestionnaireRef is the lightweight questionnaire descriptor carried on the
// flow state.
type QuestionnaireRef struct {
	ID               string                         `json:"id"`
	Type             qnrconstants.QuestionnaireType `json:"type"`
	AssetID          string                         `json:"asset_id,omitempty"`
	CompletionStatus qnrconstants.CompletionStatus  `json:"completion_status"`
}

// CollectionFlowState is the engine-owned state of one collection flow.
// It is mutated only through the phase and state managers.
type CollectionFlowState struct {
	FlowID                 string                            `json:"flow_id"`
	Tenant                 TenantContext                     `json:"tenant"`
	Status                 constants.FlowStatus              `json:"status"`
	CurrentPhase           constants.CollectionPhase         `json:"current_phase"`
	Progress               WorkflowProgress                  `json:"progress"`
	PhaseResults           map[string]map[string]interface{} `json:"phase_results,omitempty"`
	Questionnaires         []QuestionnaireRef                `json:"questionnaires,omitempty"`
	SelectedAssetIDs       []string                          `json:"selected_asset_ids,omitempty"`
	AssessmentReady        bool                              `json:"assessment_ready"`
	AppsReadyForAssessment []string                          `json:"apps_ready_for_assessment,omitempty"`
	Errors                 []string                          `json:"errors,omitempty"`
	Warnings               []string                          `json:"warnings,omitempty"`
	CreatedAt              time.Time                         `json:"created_at"`
	UpdatedAt              time.Time                         `json:"updated_at"`
}

// SetPhase is the single place the flow's phase is written. It updates the
// top-level phase field, the embedded progress record, and the flow status
// together so the two representations of the phase can never disagree.
func (s *CollectionFlowState) SetPhase(phase constants.CollectionPhase) {
	s.CurrentPhase = phase
	s.Progress.WorkflowPhase = phase
	s.Status = constants.StatusForPhase(phase)
}

// AppendError appends a fatal error message to the flow's error list.
func (s *CollectionFlowState) AppendError(message string) {
	s.Errors = append(s.Errors, message)
}

// AppendWarning appends a warning message to the flow's warning list.
func (s *CollectionFlowState) AppendWarning(message string) {
	s.Warnings = append(s.Warnings, message)
}

// CompletionReport aggregates the flow's progress booleans and advises whether
// the next phase is reachable. Enforcement stays with the phase manager; this
// report is advisory.
type CompletionReport struct {
	CurrentPhase              constants.CollectionPhase  `json:"current_phase"`
	BootstrapCompleted        bool                       `json:"bootstrap_completed"`
	DetailedCollectionStarted bool                       `json:"detailed_collection_started"`
	ReviewPhaseEntered        bool                       `json:"review_phase_entered"`
	AssessmentReady           bool                       `json:"assessment_ready"`
	ReadyForNextPhase         bool                       `json:"ready_for_next_phase"`
	NextPhase                 *constants.CollectionPhase `json:"next_phase,omitempty"`
}

// SubmitRequest is the request payload of the submit operation.
type SubmitRequest struct {
	QuestionnaireID      string                 `json:"questionnaire_id"`
	Answers              map[string]interface{} `json:"answers"`
	AssetID              string                 `json:"asset_id,omitempty"`
	CompletionPercentage float64                `json:"completion_percentage,omitempty"`
	SaveType             string                 `json:"save_type"`
}

// SubmitResult is the outcome of one submission.
type SubmitResult struct {
	ResponsesSaved  int                  `json:"responses_saved"`
	GapsResolved    int                  `json:"gaps_resolved"`
	FlowStatus      constants.FlowStatus `json:"flow_status"`
	Progress        WorkflowProgress     `json:"progress"`
	AssessmentReady bool                 `json:"assessment_ready"`
	WritebackFailed bool                 `json:"writeback_failed,omitempty"`
	Warnings        []string             `json:"warnings,omitempty"`
}

// AdvanceResult is the outcome of a phase advancement attempt.
type AdvanceResult struct {
	Advanced        bool                      `json:"advanced"`
	PreviousPhase   constants.CollectionPhase `json:"previous_phase"`
	NewPhase        constants.CollectionPhase `json:"new_phase"`
	Recommendations []string                  `json:"recommendations,omitempty"`
}

// WorkflowStatusResult is the full status view of one flow.
type WorkflowStatusResult struct {
	FlowID                    string                         `json:"flow_id"`
	Status                    constants.FlowStatus           `json:"status"`
	Progress                  WorkflowProgress               `json:"progress"`
	BootstrapCompleted        bool                           `json:"bootstrap_completed"`
	DetailedCollectionStarted bool                           `json:"detailed_collection_started"`
	ReviewPhaseEntered        bool                           `json:"review_phase_entered"`
	AssessmentReady           bool                           `json:"assessment_ready"`
	AppsReadyForAssessment    []string                       `json:"apps_ready_for_assessment,omitempty"`
	CanonicalIntegration      *appcatalog.IntegrationSummary `json:"canonical_integration,omitempty"`
}

// CreateFlowRequest is the request payload for creating a collection flow.
type CreateFlowRequest struct {
	Tenant           TenantContext `json:"tenant"`
	SelectedAssetIDs []string      `json:"selected_asset_ids,omitempty"`
}
