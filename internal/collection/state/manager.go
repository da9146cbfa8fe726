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

// Package state implements the workflow state manager that owns questionnaire
// generation idempotency decisions and submission bookkeeping.
package state

import (
	"github.com/migrata/compass/internal/collection/constants"
	"github.com/migrata/compass/internal/collection/model"
	qnrconstants "github.com/migrata/compass/internal/questionnaire/constants"
	"github.com/migrata/compass/internal/system/log"
)

const loggerComponentName = "WorkflowStateManager"

// ManagerInterface guards questionnaire generation and records submissions.
type ManagerInterface interface {
	CheckBootstrapQuestionnaireExists(state *model.CollectionFlowState) bool
	ShouldGenerateQuestionnaire(state *model.CollectionFlowState,
		questionnaireType qnrconstants.QuestionnaireType) bool
	RecordQuestionnaireSubmission(state *model.CollectionFlowState,
		questionnaireType qnrconstants.QuestionnaireType, record model.SubmissionRecord)
}

// manager is the implementation of ManagerInterface.
type manager struct{}

// NewManager creates a new workflow state manager.
func NewManager() ManagerInterface {
	return &manager{}
}

// CheckBootstrapQuestionnaireExists reports whether the flow already has a
// bootstrap questionnaire, either as a recorded submission or among its stored
// questionnaire descriptors. Checked before generation so at most one
// bootstrap questionnaire ever exists per flow.
func (m *manager) CheckBootstrapQuestionnaireExists(state *model.CollectionFlowState) bool {
	if state.Progress.BootstrapCompleted {
		return true
	}
	if _, ok := state.Progress.QuestionnaireSubmissions[string(qnrconstants.QuestionnaireTypeBootstrap)]; ok {
		return true
	}
	for _, ref := range state.Questionnaires {
		if ref.Type == qnrconstants.QuestionnaireTypeBootstrap {
			return true
		}
	}
	return false
}

// ShouldGenerateQuestionnaire decides whether a questionnaire of the given
// type may be generated for the flow's current state.
func (m *manager) ShouldGenerateQuestionnaire(state *model.CollectionFlowState,
	questionnaireType qnrconstants.QuestionnaireType) bool {
	switch questionnaireType {
	case qnrconstants.QuestionnaireTypeBootstrap:
		return !m.CheckBootstrapQuestionnaireExists(state)
	case qnrconstants.QuestionnaireTypeDetailed:
		return state.Progress.BootstrapCompleted && !state.Progress.DetailedCollectionStarted
	case qnrconstants.QuestionnaireTypeFollowup:
		return state.CurrentPhase == constants.PhaseCollectingDetailed ||
			state.CurrentPhase == constants.PhaseReviewing
	default:
		return false
	}
}

// RecordQuestionnaireSubmission appends the submission record keyed by type.
// A bootstrap submission at or above the completion threshold flips the
// bootstrap-completed marker, which is the sole automatic trigger for the
// collecting_basic to collecting_detailed auto-advance.
func (m *manager) RecordQuestionnaireSubmission(state *model.CollectionFlowState,
	questionnaireType qnrconstants.QuestionnaireType, record model.SubmissionRecord) {
	if state.Progress.QuestionnaireSubmissions == nil {
		state.Progress.QuestionnaireSubmissions = make(map[string]model.SubmissionRecord)
	}
	state.Progress.QuestionnaireSubmissions[string(questionnaireType)] = record

	if questionnaireType == qnrconstants.QuestionnaireTypeBootstrap &&
		record.CompletionPercentage >= constants.BootstrapCompletionThreshold {
		state.Progress.BootstrapCompleted = true

		logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
		logger.Info("Bootstrap collection completed",
			log.String(log.LoggerKeyFlowID, state.FlowID),
			log.Float64("completionPercentage", record.CompletionPercentage))
	}
}
