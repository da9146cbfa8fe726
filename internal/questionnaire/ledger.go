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

package questionnaire

import (
	"time"

	"github.com/migrata/compass/internal/questionnaire/constants"
	"github.com/migrata/compass/internal/questionnaire/model"
	"github.com/migrata/compass/internal/questionnaire/store"
	dbmodel "github.com/migrata/compass/internal/system/database/model"
	"github.com/migrata/compass/internal/system/log"
)

// LedgerInterface tracks questionnaire completion status and answer snapshots.
type LedgerInterface interface {
	Update(tx dbmodel.TxInterface, questionnaires []model.AdaptiveQuestionnaire,
		questionnaireID string, snapshot map[string]interface{}, saveType constants.SaveType,
		now time.Time) (bool, error)
}

// ledger is the implementation of LedgerInterface.
type ledger struct {
	questionnaireStore store.QuestionnaireStoreInterface
}

// NewLedger creates a new questionnaire ledger backed by the given store.
func NewLedger(questionnaireStore store.QuestionnaireStoreInterface) LedgerInterface {
	return &ledger{questionnaireStore: questionnaireStore}
}

// Update flips the referenced questionnaire's completion status and overwrites
// its answer snapshot, both in the persisted row and in the caller's in-memory
// list so later stages of the same submission see the new state. A missing
// questionnaire is a warning, not an error: submission success does not depend
// on ledger bookkeeping succeeding.
func (l *ledger) Update(tx dbmodel.TxInterface, questionnaires []model.AdaptiveQuestionnaire,
	questionnaireID string, snapshot map[string]interface{}, saveType constants.SaveType,
	now time.Time) (bool, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "QuestionnaireLedger"))

	var target *model.AdaptiveQuestionnaire
	for i := range questionnaires {
		if questionnaires[i].ID == questionnaireID {
			target = &questionnaires[i]
			break
		}
	}
	if target == nil {
		logger.Warn("Questionnaire not found for ledger update",
			log.String(log.LoggerKeyQuestionnaireID, questionnaireID))
		return false, nil
	}

	status := constants.CompletionStatusInProgress
	var completedAt *time.Time
	if saveType == constants.SaveTypeComplete {
		status = constants.CompletionStatusCompleted
		completedAt = &now
	}

	if err := l.questionnaireStore.UpdateCompletionTx(tx, questionnaireID, status,
		snapshot, completedAt); err != nil {
		return false, err
	}

	target.CompletionStatus = status
	target.ResponsesCollected = snapshot
	target.CompletedAt = completedAt
	return true, nil
}
