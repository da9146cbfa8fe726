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

	"github.com/migrata/compass/internal/collection/constants"
)

// SubmissionRecord is the bookkeeping entry for one questionnaire submission,
// keyed by questionnaire type in the progress record.
type SubmissionRecord struct {
	QuestionnaireID      string    `json:"questionnaire_id"`
	CompletionPercentage float64   `json:"completion_percentage"`
	SubmittedBy          string    `json:"submitted_by,omitempty"`
	SubmittedAt          time.Time `json:"submitted_at"`
}

// WorkflowProgress is the progress record embedded in the flow's phase state.
// The workflow phase only increases except for explicit forced resets.
type WorkflowProgress struct {
	WorkflowPhase             constants.CollectionPhase   `json:"workflow_phase"`
	QuestionnaireSubmissions  map[string]SubmissionRecord `json:"questionnaire_submissions,omitempty"`
	CompletedPhases           []string                    `json:"completed_phases,omitempty"`
	BootstrapCompleted        bool                        `json:"bootstrap_completed"`
	DetailedCollectionStarted bool                        `json:"detailed_collection_started"`
	ReviewPhaseEntered        bool                        `json:"review_phase_entered"`
	LastProgressionTime       *time.Time                  `json:"last_progression_time,omitempty"`
	PhaseIterations           map[string]int              `json:"phase_iterations,omitempty"`
}

// NewWorkflowProgress returns a progress record positioned at the initial phase.
func NewWorkflowProgress() WorkflowProgress {
	return WorkflowProgress{
		WorkflowPhase:            constants.PhaseInitial,
		QuestionnaireSubmissions: make(map[string]SubmissionRecord),
		CompletedPhases:          make([]string, 0),
		PhaseIterations:          make(map[string]int),
	}
}

// HasCompletedPhase reports whether the named phase appears in the completed set.
func (p *WorkflowProgress) HasCompletedPhase(phase constants.CollectionPhase) bool {
	for _, name := range p.CompletedPhases {
		if name == string(phase) {
			return true
		}
	}
	return false
}
