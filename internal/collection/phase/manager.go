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

// Package phase implements the workflow phase manager that owns the phase
// transition graph and phase-entry side effects.
package phase

import (
	"time"

	"github.com/migrata/compass/internal/collection/constants"
	"github.com/migrata/compass/internal/collection/model"
	"github.com/migrata/compass/internal/system/log"
)

const loggerComponentName = "WorkflowPhaseManager"

// ManagerInterface owns the canonical phase graph
// initial → collecting_basic → collecting_detailed → reviewing → complete.
type ManagerInterface interface {
	GetNextPhase(current constants.CollectionPhase) (constants.CollectionPhase, bool)
	CanAdvanceToPhase(progress *model.WorkflowProgress, target constants.CollectionPhase) bool
	TransitionToPhase(state *model.CollectionFlowState, target constants.CollectionPhase,
		now time.Time)
	CheckAutoAdvancement(state *model.CollectionFlowState) (constants.CollectionPhase, bool)
}

// manager is the implementation of ManagerInterface.
type manager struct{}

// NewManager creates a new workflow phase manager.
func NewManager() ManagerInterface {
	return &manager{}
}

// GetNextPhase returns the single successor phase in the linear graph. The
// terminal phase has no successor.
func (m *manager) GetNextPhase(current constants.CollectionPhase) (constants.CollectionPhase, bool) {
	return current.NextPhase()
}

// CanAdvanceToPhase reports whether the progress record satisfies the target
// phase's prerequisites. Staying at or moving backward is always allowed;
// forward moves are gated by per-phase predicates.
func (m *manager) CanAdvanceToPhase(progress *model.WorkflowProgress,
	target constants.CollectionPhase) bool {
	if !target.IsValid() {
		return false
	}
	if target.Index() <= progress.WorkflowPhase.Index() {
		return true
	}

	switch target {
	case constants.PhaseCollectingDetailed:
		return progress.BootstrapCompleted
	case constants.PhaseReviewing:
		return progress.DetailedCollectionStarted
	case constants.PhaseComplete:
		return progress.ReviewPhaseEntered
	default:
		return true
	}
}

// TransitionToPhase moves the flow into the target phase: it records the
// previous phase as completed, writes phase, progress and status through the
// single setter, stamps the progression time, seeds the phase result slot,
// and raises the phase-entry markers downstream predicates depend on.
func (m *manager) TransitionToPhase(state *model.CollectionFlowState,
	target constants.CollectionPhase, now time.Time) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	previous := state.CurrentPhase
	if previous.IsValid() && previous != target && !state.Progress.HasCompletedPhase(previous) {
		state.Progress.CompletedPhases = append(state.Progress.CompletedPhases, string(previous))
	}

	state.SetPhase(target)
	state.Progress.LastProgressionTime = &now
	state.UpdatedAt = now

	// Phase result initialization is idempotent; an existing slot is never
	// overwritten on re-entry.
	if state.PhaseResults == nil {
		state.PhaseResults = make(map[string]map[string]interface{})
	}
	if _, ok := state.PhaseResults[string(target)]; !ok {
		state.PhaseResults[string(target)] = map[string]interface{}{
			"started_at": now,
		}
	}

	switch target {
	case constants.PhaseCollectingDetailed:
		state.Progress.DetailedCollectionStarted = true
	case constants.PhaseReviewing:
		state.Progress.ReviewPhaseEntered = true
	}

	logger.Info("Flow transitioned phase",
		log.String(log.LoggerKeyFlowID, state.FlowID),
		log.String("previousPhase", string(previous)),
		log.String("newPhase", string(target)))
}

// CheckAutoAdvancement returns the next phase for the single defined
// auto-advance rule: collecting_basic moves to collecting_detailed once the
// bootstrap questionnaire is completed. Every other transition requires an
// explicit caller decision.
func (m *manager) CheckAutoAdvancement(state *model.CollectionFlowState) (
	constants.CollectionPhase, bool) {
	if state.CurrentPhase == constants.PhaseCollectingBasic && state.Progress.BootstrapCompleted {
		return constants.PhaseCollectingDetailed, true
	}
	return "", false
}
