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

// Package constants defines the constants used by the collection workflow engine.
package constants

// CollectionPhase represents one phase of the collection workflow.
type CollectionPhase string

const (
	// PhaseInitial is the phase before any collection has started.
	PhaseInitial CollectionPhase = "initial"
	// PhaseCollectingBasic is the automated basic collection phase.
	PhaseCollectingBasic CollectionPhase = "collecting_basic"
	// PhaseCollectingDetailed is the per-asset detailed collection phase.
	PhaseCollectingDetailed CollectionPhase = "collecting_detailed"
	// PhaseReviewing is the validation and review phase.
	PhaseReviewing CollectionPhase = "reviewing"
	// PhaseComplete is the terminal phase.
	PhaseComplete CollectionPhase = "complete"
)

// phaseOrder fixes the phase ordering by explicit index. Phase comparisons go
// through this map, never through name comparison.
var phaseOrder = map[CollectionPhase]int{
	PhaseInitial:            0,
	PhaseCollectingBasic:    1,
	PhaseCollectingDetailed: 2,
	PhaseReviewing:          3,
	PhaseComplete:           4,
}

// phaseSequence is the canonical linear phase graph.
var phaseSequence = []CollectionPhase{
	PhaseInitial,
	PhaseCollectingBasic,
	PhaseCollectingDetailed,
	PhaseReviewing,
	PhaseComplete,
}

// Index returns the phase's ordinal position, or -1 for an unknown phase.
func (p CollectionPhase) Index() int {
	if idx, ok := phaseOrder[p]; ok {
		return idx
	}
	return -1
}

// IsValid reports whether the phase is one of the defined phases.
func (p CollectionPhase) IsValid() bool {
	return p.Index() >= 0
}

// NextPhase returns the single successor phase in the linear graph. The
// terminal phase has no successor.
func (p CollectionPhase) NextPhase() (CollectionPhase, bool) {
	idx := p.Index()
	if idx < 0 || idx >= len(phaseSequence)-1 {
		return "", false
	}
	return phaseSequence[idx+1], true
}

// FlowStatus represents the top-level status of a collection flow.
type FlowStatus string

const (
	// FlowStatusCollectingData denotes automated data collection in progress.
	FlowStatusCollectingData FlowStatus = "collecting_data"
	// FlowStatusGeneratingQuestionnaires denotes questionnaire generation in progress.
	FlowStatusGeneratingQuestionnaires FlowStatus = "generating_questionnaires"
	// FlowStatusValidatingData denotes collected data under validation.
	FlowStatusValidatingData FlowStatus = "validating_data"
	// FlowStatusCompleted denotes a finished flow.
	FlowStatusCompleted FlowStatus = "completed"
	// FlowStatusError denotes a flow stopped by a fatal error.
	FlowStatusError FlowStatus = "error"
)

// phaseStatus maps each phase to the flow status set on phase entry.
var phaseStatus = map[CollectionPhase]FlowStatus{
	PhaseInitial:            FlowStatusCollectingData,
	PhaseCollectingBasic:    FlowStatusCollectingData,
	PhaseCollectingDetailed: FlowStatusGeneratingQuestionnaires,
	PhaseReviewing:          FlowStatusValidatingData,
	PhaseComplete:           FlowStatusCompleted,
}

// StatusForPhase returns the flow status that accompanies entry into the phase.
func StatusForPhase(p CollectionPhase) FlowStatus {
	if status, ok := phaseStatus[p]; ok {
		return status
	}
	return FlowStatusCollectingData
}

const (
	// BootstrapCompletionThreshold is the completion share at or above which a
	// bootstrap submission counts as completing basic collection.
	BootstrapCompletionThreshold = 0.8

	// DefaultMaxPhaseIterations is the loop-guard ceiling on repeated
	// executions of the same phase.
	DefaultMaxPhaseIterations = 3
)
