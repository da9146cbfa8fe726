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

package readiness

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	assetmodel "github.com/migrata/compass/internal/asset/model"
	qnrconstants "github.com/migrata/compass/internal/questionnaire/constants"
	qnrmodel "github.com/migrata/compass/internal/questionnaire/model"
	"github.com/migrata/compass/internal/system/config"
	dbmodel "github.com/migrata/compass/internal/system/database/model"
)

const (
	testFlowID  = "f3b4c1d2-0000-4000-8000-000000000001"
	testAssetID = "3fa85f64-5717-4562-b3fc-2c963f66afa6"
)

type mockQuestionnaireStore struct {
	MockGetValidatedQuestionIDs func(flowID string) ([]string, error)
}

func (m *mockQuestionnaireStore) GetQuestionnairesByFlow(flowID string) (
	[]qnrmodel.AdaptiveQuestionnaire, error) {
	return nil, nil
}

func (m *mockQuestionnaireStore) GetQuestionnaireByID(questionnaireID, flowID string) (
	*qnrmodel.AdaptiveQuestionnaire, error) {
	return nil, nil
}

func (m *mockQuestionnaireStore) CreateQuestionnaire(q qnrmodel.AdaptiveQuestionnaire) error {
	return nil
}

func (m *mockQuestionnaireStore) UpdateCompletionTx(tx dbmodel.TxInterface, questionnaireID string,
	status qnrconstants.CompletionStatus, responsesCollected map[string]interface{},
	completedAt *time.Time) error {
	return nil
}

func (m *mockQuestionnaireStore) InsertResponseTx(tx dbmodel.TxInterface,
	response qnrmodel.QuestionnaireResponse) error {
	return nil
}

func (m *mockQuestionnaireStore) GetValidatedQuestionIDs(flowID string) ([]string, error) {
	if m.MockGetValidatedQuestionIDs != nil {
		return m.MockGetValidatedQuestionIDs(flowID)
	}
	return nil, nil
}

type mockAssetStore struct {
	MockGetAssetsByIDs      func(assetIDs []string) ([]assetmodel.Asset, error)
	MockMarkAssessmentReady func(assetIDs []string) error

	MarkAssessmentReadyCalls [][]string
}

func (m *mockAssetStore) GetAssetByID(assetID string) (*assetmodel.Asset, error) {
	return nil, nil
}

func (m *mockAssetStore) GetAssetsByIDs(assetIDs []string) ([]assetmodel.Asset, error) {
	if m.MockGetAssetsByIDs != nil {
		return m.MockGetAssetsByIDs(assetIDs)
	}
	return nil, nil
}

func (m *mockAssetStore) UpdateCriticality(assetID, value string) error {
	return nil
}

func (m *mockAssetStore) UpdateEnvironment(assetID, value string) error {
	return nil
}

func (m *mockAssetStore) SetCustomAttribute(assetID, key, value string) error {
	return nil
}

func (m *mockAssetStore) MarkAssessmentReady(assetIDs []string) error {
	m.MarkAssessmentReadyCalls = append(m.MarkAssessmentReadyCalls, assetIDs)

	if m.MockMarkAssessmentReady != nil {
		return m.MockMarkAssessmentReady(assetIDs)
	}
	return nil
}

type GateTestSuite struct {
	suite.Suite
	qnrStore   *mockQuestionnaireStore
	assetStore *mockAssetStore
	gate       GateInterface
}

func TestGateSuite(t *testing.T) {
	suite.Run(t, new(GateTestSuite))
}

func (suite *GateTestSuite) SetupTest() {
	config.ResetCompassRuntime()
	err := config.InitializeCompassRuntime("", &config.Config{})
	assert.NoError(suite.T(), err)

	suite.qnrStore = &mockQuestionnaireStore{}
	suite.assetStore = &mockAssetStore{}
	suite.gate = NewGate(suite.qnrStore, suite.assetStore)
}

func (suite *GateTestSuite) TearDownTest() {
	config.ResetCompassRuntime()
}

func (suite *GateTestSuite) TestReadyWhenBatchAnswersBothRequirements() {
	input := EvaluationInput{
		FlowID:           testFlowID,
		SelectedAssetIDs: []string{testAssetID},
		Questionnaires: []qnrmodel.AdaptiveQuestionnaire{
			{ID: "q-1", AssetID: testAssetID, CompletionStatus: qnrconstants.CompletionStatusCompleted},
		},
		BatchQuestionIDs: []string{"business_criticality", "environment"},
	}

	decision := suite.gate.Evaluate(input)

	assert.True(suite.T(), decision.Ready)
	assert.True(suite.T(), decision.BusinessCriticalitySatisfied)
	assert.True(suite.T(), decision.EnvironmentSatisfied)
	assert.True(suite.T(), decision.QuestionnairesComplete)
	assert.Equal(suite.T(), []string{testAssetID}, decision.ReadyAssetIDs)
	assert.Len(suite.T(), suite.assetStore.MarkAssessmentReadyCalls, 1)
	assert.Equal(suite.T(), []string{testAssetID}, suite.assetStore.MarkAssessmentReadyCalls[0])
}

func (suite *GateTestSuite) TestCompositeBatchIDSatisfiesRequirement() {
	input := EvaluationInput{
		FlowID:           testFlowID,
		SelectedAssetIDs: []string{testAssetID},
		BatchQuestionIDs: []string{testAssetID + "__business_criticality"},
	}
	suite.qnrStore.MockGetValidatedQuestionIDs = func(string) ([]string, error) {
		return []string{"deployment_environment"}, nil
	}

	decision := suite.gate.Evaluate(input)

	assert.True(suite.T(), decision.BusinessCriticalitySatisfied)
	assert.True(suite.T(), decision.EnvironmentSatisfied)
	assert.True(suite.T(), decision.Ready)
}

func (suite *GateTestSuite) TestAssetFieldsSatisfyRequirements() {
	suite.assetStore.MockGetAssetsByIDs = func([]string) ([]assetmodel.Asset, error) {
		return []assetmodel.Asset{
			{ID: testAssetID, Criticality: "high",
				CustomAttributes: map[string]string{"environment": "production"}},
		}, nil
	}
	input := EvaluationInput{
		FlowID:           testFlowID,
		SelectedAssetIDs: []string{testAssetID},
	}

	decision := suite.gate.Evaluate(input)

	assert.True(suite.T(), decision.BusinessCriticalitySatisfied)
	assert.True(suite.T(), decision.EnvironmentSatisfied)
	assert.True(suite.T(), decision.Ready)
}

func (suite *GateTestSuite) TestNotReadyWhenRequirementUnmet() {
	input := EvaluationInput{
		FlowID:           testFlowID,
		SelectedAssetIDs: []string{testAssetID},
		BatchQuestionIDs: []string{"business_criticality"},
	}

	decision := suite.gate.Evaluate(input)

	assert.False(suite.T(), decision.Ready)
	assert.True(suite.T(), decision.BusinessCriticalitySatisfied)
	assert.False(suite.T(), decision.EnvironmentSatisfied)
	assert.Empty(suite.T(), suite.assetStore.MarkAssessmentReadyCalls)
}

func (suite *GateTestSuite) TestPendingQuestionnaireBlocksItsAsset() {
	input := EvaluationInput{
		FlowID:           testFlowID,
		SelectedAssetIDs: []string{testAssetID, "asset-2"},
		Questionnaires: []qnrmodel.AdaptiveQuestionnaire{
			{ID: "q-1", AssetID: testAssetID, CompletionStatus: qnrconstants.CompletionStatusPending},
			{ID: "q-2", AssetID: "asset-2", CompletionStatus: qnrconstants.CompletionStatusCompleted},
		},
		BatchQuestionIDs: []string{"business_criticality", "environment"},
	}

	decision := suite.gate.Evaluate(input)

	assert.False(suite.T(), decision.Ready)
	assert.False(suite.T(), decision.QuestionnairesComplete)
	assert.Equal(suite.T(), []string{testAssetID}, decision.BlockingAssetIDs)
}

func (suite *GateTestSuite) TestBenignGenerationFailureDoesNotBlock() {
	input := EvaluationInput{
		FlowID:           testFlowID,
		SelectedAssetIDs: []string{testAssetID},
		Questionnaires: []qnrmodel.AdaptiveQuestionnaire{
			{ID: "q-1", AssetID: testAssetID,
				CompletionStatus: qnrconstants.CompletionStatusFailed,
				GenerationReason: qnrconstants.GenerationReasonNoGapsFound},
		},
		BatchQuestionIDs: []string{"business_criticality", "environment"},
	}

	decision := suite.gate.Evaluate(input)

	assert.True(suite.T(), decision.QuestionnairesComplete)
	assert.True(suite.T(), decision.Ready)
}

func (suite *GateTestSuite) TestRealGenerationFailureBlocks() {
	input := EvaluationInput{
		FlowID:           testFlowID,
		SelectedAssetIDs: []string{testAssetID},
		Questionnaires: []qnrmodel.AdaptiveQuestionnaire{
			{ID: "q-1", AssetID: testAssetID,
				CompletionStatus: qnrconstants.CompletionStatusFailed,
				GenerationReason: qnrconstants.GenerationReasonError},
		},
		BatchQuestionIDs: []string{"business_criticality", "environment"},
	}

	decision := suite.gate.Evaluate(input)

	assert.False(suite.T(), decision.Ready)
	assert.Equal(suite.T(), []string{testAssetID}, decision.BlockingAssetIDs)
}

func (suite *GateTestSuite) TestEvaluationErrorTreatedAsNotReady() {
	suite.qnrStore.MockGetValidatedQuestionIDs = func(string) ([]string, error) {
		return nil, errors.New("database unavailable")
	}
	input := EvaluationInput{
		FlowID:           testFlowID,
		SelectedAssetIDs: []string{testAssetID},
		BatchQuestionIDs: []string{"business_criticality", "environment"},
	}

	decision := suite.gate.Evaluate(input)

	assert.False(suite.T(), decision.Ready)
	assert.Empty(suite.T(), suite.assetStore.MarkAssessmentReadyCalls)
}

func (suite *GateTestSuite) TestMarkReadyFailureKeepsFlowNotReady() {
	suite.assetStore.MockMarkAssessmentReady = func([]string) error {
		return errors.New("update failed")
	}
	input := EvaluationInput{
		FlowID:           testFlowID,
		SelectedAssetIDs: []string{testAssetID},
		BatchQuestionIDs: []string{"business_criticality", "environment"},
	}

	decision := suite.gate.Evaluate(input)

	assert.False(suite.T(), decision.Ready)
	assert.True(suite.T(), decision.BusinessCriticalitySatisfied)
	assert.True(suite.T(), decision.EnvironmentSatisfied)
	assert.True(suite.T(), decision.QuestionnairesComplete)
}

func (suite *GateTestSuite) TestConfiguredQuestionIDsOverrideDefaults() {
	config.ResetCompassRuntime()
	cfg := &config.Config{}
	cfg.Collection.Readiness.BusinessCriticalityQuestionIDs = []string{"custom_crit"}
	cfg.Collection.Readiness.EnvironmentQuestionIDs = []string{"custom_env"}
	err := config.InitializeCompassRuntime("", cfg)
	assert.NoError(suite.T(), err)

	input := EvaluationInput{
		FlowID:           testFlowID,
		SelectedAssetIDs: []string{testAssetID},
		BatchQuestionIDs: []string{"business_criticality", "environment"},
	}
	decision := suite.gate.Evaluate(input)
	assert.False(suite.T(), decision.BusinessCriticalitySatisfied)
	assert.False(suite.T(), decision.EnvironmentSatisfied)

	input.BatchQuestionIDs = []string{"custom_crit", "custom_env"}
	decision = suite.gate.Evaluate(input)
	assert.True(suite.T(), decision.BusinessCriticalitySatisfied)
	assert.True(suite.T(), decision.EnvironmentSatisfied)
}
