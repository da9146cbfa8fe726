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

package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/migrata/compass/internal/collection/constants"
	"github.com/migrata/compass/internal/collection/model"
	qnrconstants "github.com/migrata/compass/internal/questionnaire/constants"
)

type StateManagerTestSuite struct {
	suite.Suite
	manager ManagerInterface
}

func TestStateManagerSuite(t *testing.T) {
	suite.Run(t, new(StateManagerTestSuite))
}

func (suite *StateManagerTestSuite) SetupTest() {
	suite.manager = NewManager()
}

func newFlowState(phase constants.CollectionPhase) *model.CollectionFlowState {
	state := &model.CollectionFlowState{FlowID: "flow-1", Progress: model.NewWorkflowProgress()}
	state.SetPhase(phase)
	return state
}

func (suite *StateManagerTestSuite) TestBootstrapExistsViaCompletionMarker() {
	state := newFlowState(constants.PhaseCollectingBasic)
	state.Progress.BootstrapCompleted = true

	assert.True(suite.T(), suite.manager.CheckBootstrapQuestionnaireExists(state))
}

func (suite *StateManagerTestSuite) TestBootstrapExistsViaSubmissionRecord() {
	state := newFlowState(constants.PhaseCollectingBasic)
	state.Progress.QuestionnaireSubmissions = map[string]model.SubmissionRecord{
		string(qnrconstants.QuestionnaireTypeBootstrap): {QuestionnaireID: "q-1"},
	}

	assert.True(suite.T(), suite.manager.CheckBootstrapQuestionnaireExists(state))
}

func (suite *StateManagerTestSuite) TestBootstrapExistsViaQuestionnaireRef() {
	state := newFlowState(constants.PhaseCollectingBasic)
	state.Questionnaires = []model.QuestionnaireRef{
		{ID: "q-1", Type: qnrconstants.QuestionnaireTypeBootstrap},
	}

	assert.True(suite.T(), suite.manager.CheckBootstrapQuestionnaireExists(state))
}

func (suite *StateManagerTestSuite) TestBootstrapAbsent() {
	state := newFlowState(constants.PhaseCollectingBasic)
	state.Questionnaires = []model.QuestionnaireRef{
		{ID: "q-1", Type: qnrconstants.QuestionnaireTypeDetailed},
	}

	assert.False(suite.T(), suite.manager.CheckBootstrapQuestionnaireExists(state))
}

func (suite *StateManagerTestSuite) TestShouldGenerateBootstrapOnlyOnce() {
	state := newFlowState(constants.PhaseCollectingBasic)

	assert.True(suite.T(), suite.manager.ShouldGenerateQuestionnaire(state,
		qnrconstants.QuestionnaireTypeBootstrap))

	state.Questionnaires = []model.QuestionnaireRef{
		{ID: "q-1", Type: qnrconstants.QuestionnaireTypeBootstrap},
	}
	assert.False(suite.T(), suite.manager.ShouldGenerateQuestionnaire(state,
		qnrconstants.QuestionnaireTypeBootstrap))
}

func (suite *StateManagerTestSuite) TestShouldGenerateDetailed() {
	state := newFlowState(constants.PhaseCollectingBasic)

	assert.False(suite.T(), suite.manager.ShouldGenerateQuestionnaire(state,
		qnrconstants.QuestionnaireTypeDetailed))

	state.Progress.BootstrapCompleted = true
	assert.True(suite.T(), suite.manager.ShouldGenerateQuestionnaire(state,
		qnrconstants.QuestionnaireTypeDetailed))

	state.Progress.DetailedCollectionStarted = true
	assert.False(suite.T(), suite.manager.ShouldGenerateQuestionnaire(state,
		qnrconstants.QuestionnaireTypeDetailed))
}

func (suite *StateManagerTestSuite) TestShouldGenerateFollowupByPhase() {
	testCases := []struct {
		phase    constants.CollectionPhase
		expected bool
	}{
		{constants.PhaseInitial, false},
		{constants.PhaseCollectingBasic, false},
		{constants.PhaseCollectingDetailed, true},
		{constants.PhaseReviewing, true},
		{constants.PhaseComplete, false},
	}

	for _, tc := range testCases {
		state := newFlowState(tc.phase)
		assert.Equal(suite.T(), tc.expected, suite.manager.ShouldGenerateQuestionnaire(state,
			qnrconstants.QuestionnaireTypeFollowup), "phase=%s", tc.phase)
	}
}

func (suite *StateManagerTestSuite) TestShouldGenerateUnknownType() {
	state := newFlowState(constants.PhaseCollectingDetailed)
	assert.False(suite.T(), suite.manager.ShouldGenerateQuestionnaire(state, "mystery"))
}

func (suite *StateManagerTestSuite) TestRecordBootstrapSubmissionAtThreshold() {
	state := newFlowState(constants.PhaseCollectingBasic)

	suite.manager.RecordQuestionnaireSubmission(state, qnrconstants.QuestionnaireTypeBootstrap,
		model.SubmissionRecord{
			QuestionnaireID:      "q-1",
			CompletionPercentage: 0.8,
			SubmittedBy:          "user-1",
			SubmittedAt:          time.Now().UTC(),
		})

	assert.True(suite.T(), state.Progress.BootstrapCompleted)
	record, ok := state.Progress.QuestionnaireSubmissions[string(qnrconstants.QuestionnaireTypeBootstrap)]
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "q-1", record.QuestionnaireID)
}

func (suite *StateManagerTestSuite) TestRecordBootstrapSubmissionBelowThreshold() {
	state := newFlowState(constants.PhaseCollectingBasic)

	suite.manager.RecordQuestionnaireSubmission(state, qnrconstants.QuestionnaireTypeBootstrap,
		model.SubmissionRecord{QuestionnaireID: "q-1", CompletionPercentage: 0.79})

	assert.False(suite.T(), state.Progress.BootstrapCompleted)
}

func (suite *StateManagerTestSuite) TestRecordDetailedSubmissionNeverFlipsBootstrap() {
	state := newFlowState(constants.PhaseCollectingDetailed)

	suite.manager.RecordQuestionnaireSubmission(state, qnrconstants.QuestionnaireTypeDetailed,
		model.SubmissionRecord{QuestionnaireID: "q-2", CompletionPercentage: 1.0})

	assert.False(suite.T(), state.Progress.BootstrapCompleted)
	_, ok := state.Progress.QuestionnaireSubmissions[string(qnrconstants.QuestionnaireTypeDetailed)]
	assert.True(suite.T(), ok)
}
