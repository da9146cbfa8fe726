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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/migrata/compass/internal/questionnaire/constants"
	"github.com/migrata/compass/internal/questionnaire/model"
	dbmodel "github.com/migrata/compass/internal/system/database/model"
	"github.com/migrata/compass/tests/mocks/databasemock"
)

type LedgerTestSuite struct {
	suite.Suite
	store *mockQuestionnaireStore
	tx    *databasemock.MockTx
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (suite *LedgerTestSuite) SetupTest() {
	suite.store = &mockQuestionnaireStore{}
	suite.tx = &databasemock.MockTx{}
}

func (suite *LedgerTestSuite) TestUpdateProgressKeepsQuestionnaireInProgress() {
	questionnaires := []model.AdaptiveQuestionnaire{
		{ID: testQuestionnaireID, FlowID: testFlowID, CompletionStatus: constants.CompletionStatusPending},
	}
	snapshot := map[string]interface{}{"region": "us-east-1"}
	ledger := NewLedger(suite.store)

	found, err := ledger.Update(suite.tx, questionnaires, testQuestionnaireID, snapshot,
		constants.SaveTypeProgress, time.Now().UTC())

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), found)
	assert.Equal(suite.T(), constants.CompletionStatusInProgress, questionnaires[0].CompletionStatus)
	assert.Equal(suite.T(), snapshot, questionnaires[0].ResponsesCollected)
	assert.Nil(suite.T(), questionnaires[0].CompletedAt)

	assert.Len(suite.T(), suite.store.UpdateCompletionCalls, 1)
	assert.Equal(suite.T(), constants.CompletionStatusInProgress, suite.store.UpdateCompletionCalls[0].Status)
	assert.Nil(suite.T(), suite.store.UpdateCompletionCalls[0].CompletedAt)
}

func (suite *LedgerTestSuite) TestUpdateCompleteStampsCompletion() {
	questionnaires := []model.AdaptiveQuestionnaire{
		{ID: testQuestionnaireID, FlowID: testFlowID, CompletionStatus: constants.CompletionStatusInProgress},
	}
	now := time.Now().UTC()
	ledger := NewLedger(suite.store)

	found, err := ledger.Update(suite.tx, questionnaires, testQuestionnaireID,
		map[string]interface{}{"region": "us-east-1"}, constants.SaveTypeComplete, now)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), found)
	assert.Equal(suite.T(), constants.CompletionStatusCompleted, questionnaires[0].CompletionStatus)
	assert.NotNil(suite.T(), questionnaires[0].CompletedAt)
	assert.Equal(suite.T(), now, *questionnaires[0].CompletedAt)

	assert.Len(suite.T(), suite.store.UpdateCompletionCalls, 1)
	assert.Equal(suite.T(), constants.CompletionStatusCompleted, suite.store.UpdateCompletionCalls[0].Status)
	assert.NotNil(suite.T(), suite.store.UpdateCompletionCalls[0].CompletedAt)
}

func (suite *LedgerTestSuite) TestUpdateMissingQuestionnaireIsWarningNotError() {
	questionnaires := []model.AdaptiveQuestionnaire{
		{ID: "other", FlowID: testFlowID},
	}
	ledger := NewLedger(suite.store)

	found, err := ledger.Update(suite.tx, questionnaires, testQuestionnaireID,
		map[string]interface{}{}, constants.SaveTypeComplete, time.Now().UTC())

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), found)
	assert.Empty(suite.T(), suite.store.UpdateCompletionCalls)
}

func (suite *LedgerTestSuite) TestUpdateStoreError() {
	questionnaires := []model.AdaptiveQuestionnaire{
		{ID: testQuestionnaireID, FlowID: testFlowID},
	}
	suite.store.MockUpdateCompletionTx = func(_ dbmodel.TxInterface, _ string,
		_ constants.CompletionStatus, _ map[string]interface{}, _ *time.Time) error {
		return errors.New("update failed")
	}
	ledger := NewLedger(suite.store)

	found, err := ledger.Update(suite.tx, questionnaires, testQuestionnaireID,
		map[string]interface{}{}, constants.SaveTypeComplete, time.Now().UTC())

	assert.Error(suite.T(), err)
	assert.False(suite.T(), found)
}
