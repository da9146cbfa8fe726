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

package phase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/migrata/compass/internal/collection/constants"
	"github.com/migrata/compass/internal/collection/model"
)

type PhaseManagerTestSuite struct {
	suite.Suite
	manager ManagerInterface
}

func TestPhaseManagerSuite(t *testing.T) {
	suite.Run(t, new(PhaseManagerTestSuite))
}

func (suite *PhaseManagerTestSuite) SetupTest() {
	suite.manager = NewManager()
}

func (suite *PhaseManagerTestSuite) TestGetNextPhaseWalksLinearGraph() {
	testCases := []struct {
		current constants.CollectionPhase
		next    constants.CollectionPhase
		ok      bool
	}{
		{constants.PhaseInitial, constants.PhaseCollectingBasic, true},
		{constants.PhaseCollectingBasic, constants.PhaseCollectingDetailed, true},
		{constants.PhaseCollectingDetailed, constants.PhaseReviewing, true},
		{constants.PhaseReviewing, constants.PhaseComplete, true},
		{constants.PhaseComplete, "", false},
	}

	for _, tc := range testCases {
		next, ok := suite.manager.GetNextPhase(tc.current)
		assert.Equal(suite.T(), tc.ok, ok, "current=%s", tc.current)
		assert.Equal(suite.T(), tc.next, next, "current=%s", tc.current)
	}
}

func (suite *PhaseManagerTestSuite) TestCanAdvanceBackwardAlwaysAllowed() {
	progress := model.NewWorkflowProgress()
	progress.WorkflowPhase = constants.PhaseReviewing

	assert.True(suite.T(), suite.manager.CanAdvanceToPhase(&progress, constants.PhaseInitial))
	assert.True(suite.T(), suite.manager.CanAdvanceToPhase(&progress, constants.PhaseCollectingBasic))
	assert.True(suite.T(), suite.manager.CanAdvanceToPhase(&progress, constants.PhaseReviewing))
}

func (suite *PhaseManagerTestSuite) TestCanAdvanceForwardGatedByPredicates() {
	progress := model.NewWorkflowProgress()
	progress.WorkflowPhase = constants.PhaseCollectingBasic

	assert.False(suite.T(), suite.manager.CanAdvanceToPhase(&progress, constants.PhaseCollectingDetailed))
	progress.BootstrapCompleted = true
	assert.True(suite.T(), suite.manager.CanAdvanceToPhase(&progress, constants.PhaseCollectingDetailed))

	progress.WorkflowPhase = constants.PhaseCollectingDetailed
	assert.False(suite.T(), suite.manager.CanAdvanceToPhase(&progress, constants.PhaseReviewing))
	progress.DetailedCollectionStarted = true
	assert.True(suite.T(), suite.manager.CanAdvanceToPhase(&progress, constants.PhaseReviewing))

	progress.WorkflowPhase = constants.PhaseReviewing
	assert.False(suite.T(), suite.manager.CanAdvanceToPhase(&progress, constants.PhaseComplete))
	progress.ReviewPhaseEntered = true
	assert.True(suite.T(), suite.manager.CanAdvanceToPhase(&progress, constants.PhaseComplete))
}

func (suite *PhaseManagerTestSuite) TestCanAdvanceRejectsUnknownPhase() {
	progress := model.NewWorkflowProgress()
	assert.False(suite.T(), suite.manager.CanAdvanceToPhase(&progress, "warp_speed"))
}

func (suite *PhaseManagerTestSuite) TestTransitionToPhaseRecordsProgress() {
	now := time.Now().UTC()
	state := &model.CollectionFlowState{FlowID: "flow-1", Progress: model.NewWorkflowProgress()}
	state.SetPhase(constants.PhaseCollectingBasic)

	suite.manager.TransitionToPhase(state, constants.PhaseCollectingDetailed, now)

	assert.Equal(suite.T(), constants.PhaseCollectingDetailed, state.CurrentPhase)
	assert.Equal(suite.T(), constants.PhaseCollectingDetailed, state.Progress.WorkflowPhase)
	assert.Equal(suite.T(), constants.FlowStatusGeneratingQuestionnaires, state.Status)
	assert.Contains(suite.T(), state.Progress.CompletedPhases, string(constants.PhaseCollectingBasic))
	assert.True(suite.T(), state.Progress.DetailedCollectionStarted)
	assert.Equal(suite.T(), now, *state.Progress.LastProgressionTime)
	assert.Equal(suite.T(), now, state.UpdatedAt)
}

func (suite *PhaseManagerTestSuite) TestTransitionSeedsPhaseResultOnce() {
	first := time.Now().UTC()
	second := first.Add(time.Hour)
	state := &model.CollectionFlowState{FlowID: "flow-1", Progress: model.NewWorkflowProgress()}
	state.SetPhase(constants.PhaseCollectingDetailed)

	suite.manager.TransitionToPhase(state, constants.PhaseReviewing, first)
	assert.Equal(suite.T(), first, state.PhaseResults[string(constants.PhaseReviewing)]["started_at"])

	// Re-entry keeps the original phase result slot.
	suite.manager.TransitionToPhase(state, constants.PhaseReviewing, second)
	assert.Equal(suite.T(), first, state.PhaseResults[string(constants.PhaseReviewing)]["started_at"])
}

func (suite *PhaseManagerTestSuite) TestTransitionDoesNotDuplicateCompletedPhases() {
	now := time.Now().UTC()
	state := &model.CollectionFlowState{FlowID: "flow-1", Progress: model.NewWorkflowProgress()}
	state.SetPhase(constants.PhaseCollectingBasic)

	suite.manager.TransitionToPhase(state, constants.PhaseCollectingDetailed, now)
	suite.manager.TransitionToPhase(state, constants.PhaseCollectingBasic, now)
	suite.manager.TransitionToPhase(state, constants.PhaseCollectingDetailed, now)

	count := 0
	for _, p := range state.Progress.CompletedPhases {
		if p == string(constants.PhaseCollectingBasic) {
			count++
		}
	}
	assert.Equal(suite.T(), 1, count)
}

func (suite *PhaseManagerTestSuite) TestTransitionRaisesReviewMarker() {
	now := time.Now().UTC()
	state := &model.CollectionFlowState{FlowID: "flow-1", Progress: model.NewWorkflowProgress()}
	state.SetPhase(constants.PhaseCollectingDetailed)

	suite.manager.TransitionToPhase(state, constants.PhaseReviewing, now)

	assert.True(suite.T(), state.Progress.ReviewPhaseEntered)
	assert.Equal(suite.T(), constants.FlowStatusValidatingData, state.Status)
}

func (suite *PhaseManagerTestSuite) TestCheckAutoAdvancement() {
	state := &model.CollectionFlowState{FlowID: "flow-1", Progress: model.NewWorkflowProgress()}
	state.SetPhase(constants.PhaseCollectingBasic)

	_, ok := suite.manager.CheckAutoAdvancement(state)
	assert.False(suite.T(), ok)

	state.Progress.BootstrapCompleted = true
	next, ok := suite.manager.CheckAutoAdvancement(state)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), constants.PhaseCollectingDetailed, next)

	// The rule applies to collecting_basic only.
	state.SetPhase(constants.PhaseCollectingDetailed)
	_, ok = suite.manager.CheckAutoAdvancement(state)
	assert.False(suite.T(), ok)
}
