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

// Package engine implements the submission unit of work: response recording,
// gap resolution, ledger update and readiness evaluation in one transaction,
// with asset write-back as a best-effort tail after commit.
package engine

import (
	"fmt"
	"time"

	"github.com/migrata/compass/internal/asset"
	"github.com/migrata/compass/internal/collection/model"
	"github.com/migrata/compass/internal/gap"
	gapmodel "github.com/migrata/compass/internal/gap/model"
	"github.com/migrata/compass/internal/questionnaire"
	qnrconstants "github.com/migrata/compass/internal/questionnaire/constants"
	qnrmodel "github.com/migrata/compass/internal/questionnaire/model"
	qnrstore "github.com/migrata/compass/internal/questionnaire/store"
	"github.com/migrata/compass/internal/readiness"
	dbmodel "github.com/migrata/compass/internal/system/database/model"
	"github.com/migrata/compass/internal/system/database/provider"
	"github.com/migrata/compass/internal/system/log"
)

const loggerComponentName = "SubmissionEngine"

// Result is the outcome of one processed submission.
type Result struct {
	ResponsesSaved    int
	GapsResolved      int
	WritebackFailed   bool
	ReadinessDecision *readiness.Decision
	Warnings          []string
}

// EngineInterface processes questionnaire submissions against a flow.
type EngineInterface interface {
	ProcessSubmission(flow *model.CollectionFlowState, request model.SubmitRequest,
		saveType qnrconstants.SaveType, now time.Time) (*Result, error)
}

// submissionEngine is the implementation of EngineInterface.
type submissionEngine struct {
	dbProvider         provider.DBProviderInterface
	gapService         gap.GapServiceInterface
	gapResolver        gap.GapResolverInterface
	questionnaireStore qnrstore.QuestionnaireStoreInterface
	recorder           questionnaire.ResponseRecorderInterface
	ledger             questionnaire.LedgerInterface
	gate               readiness.GateInterface
	writeback          asset.WritebackInterface
}

// NewEngine creates a new submission engine from its collaborators.
func NewEngine(gapService gap.GapServiceInterface, gapResolver gap.GapResolverInterface,
	questionnaireStore qnrstore.QuestionnaireStoreInterface,
	recorder questionnaire.ResponseRecorderInterface, ledger questionnaire.LedgerInterface,
	gate readiness.GateInterface, writeback asset.WritebackInterface) EngineInterface {
	return &submissionEngine{
		dbProvider:         provider.GetDBProvider(),
		gapService:         gapService,
		gapResolver:        gapResolver,
		questionnaireStore: questionnaireStore,
		recorder:           recorder,
		ledger:             ledger,
		gate:               gate,
		writeback:          writeback,
	}
}

// ProcessSubmission runs the ordered submission pipeline: persist response
// records, resolve matching gaps, update the questionnaire ledger, commit, and
// only then apply the asset write-back tail and, for a completing submission,
// the readiness gate. A failure before commit rolls the whole unit back;
// write-back failure after commit is a partial-success condition.
func (e *submissionEngine) ProcessSubmission(flow *model.CollectionFlowState,
	request model.SubmitRequest, saveType qnrconstants.SaveType, now time.Time) (*Result, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	questionnaires, err := e.questionnaireStore.GetQuestionnairesByFlow(flow.FlowID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questionnaires: %w", err)
	}

	index, err := e.gapService.LoadPendingIndex(flow.FlowID)
	if err != nil {
		return nil, fmt.Errorf("failed to load gap index: %w", err)
	}

	dbClient, err := e.dbProvider.GetDBClient(provider.DBNameInventory)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	tx, err := dbClient.BeginTx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	meta := qnrmodel.SubmissionMetadata{
		AssetID:              request.AssetID,
		CompletionPercentage: request.CompletionPercentage,
	}

	responses, err := e.recorder.Record(tx, flow.FlowID, request.QuestionnaireID,
		request.Answers, meta, flow.Tenant.UserID, index, now)
	if err != nil {
		return nil, rollback(tx, fmt.Errorf("failed to record responses: %w", err))
	}

	resolved, err := e.gapResolver.Resolve(tx, index, request.Answers, now)
	if err != nil {
		return nil, rollback(tx, fmt.Errorf("failed to resolve gaps: %w", err))
	}

	result := &Result{
		ResponsesSaved: len(responses),
		GapsResolved:   len(resolved),
	}

	found, err := e.ledger.Update(tx, questionnaires, request.QuestionnaireID,
		request.Answers, saveType, now)
	if err != nil {
		return nil, rollback(tx, fmt.Errorf("failed to update questionnaire ledger: %w", err))
	}
	if !found {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("questionnaire %s not found for flow", request.QuestionnaireID))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit submission: %w", err)
	}

	// Write-back runs after commit: its failure never unwinds the committed
	// gap and response state.
	if len(resolved) > 0 {
		wbResult := e.writeback.Apply(buildWritebackItems(resolved, responses, meta))
		if len(wbResult.Failed) > 0 {
			result.WritebackFailed = true
			for _, failure := range wbResult.Failed {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("write-back failed for gap %s: %s", failure.GapID, failure.Reason))
			}
		}
	}

	if saveType == qnrconstants.SaveTypeComplete {
		decision := e.gate.Evaluate(readiness.EvaluationInput{
			FlowID:           flow.FlowID,
			SelectedAssetIDs: flow.SelectedAssetIDs,
			Questionnaires:   questionnaires,
			BatchQuestionIDs: answerFieldIDs(request.Answers),
		})
		result.ReadinessDecision = &decision
	}

	logger.Debug("Processed submission",
		log.String(log.LoggerKeyFlowID, flow.FlowID),
		log.String(log.LoggerKeyQuestionnaireID, request.QuestionnaireID),
		log.Int("responsesSaved", result.ResponsesSaved),
		log.Int("gapsResolved", result.GapsResolved))
	return result, nil
}

// rollback rolls the transaction back and keeps the original error primary.
func rollback(tx dbmodel.TxInterface, err error) error {
	if rbErr := tx.Rollback(); rbErr != nil {
		log.GetLogger().Error("Failed to roll back submission transaction", log.Error(rbErr))
	}
	return err
}

// buildWritebackItems pairs each resolved gap with its recorded response value
// and the attribute name the value belongs under on the asset.
func buildWritebackItems(resolved []gapmodel.CollectionDataGap,
	responses []qnrmodel.QuestionnaireResponse, meta qnrmodel.SubmissionMetadata) []asset.WritebackItem {
	responseByGap := make(map[string]*qnrmodel.QuestionnaireResponse, len(responses))
	for i := range responses {
		if responses[i].GapID != "" {
			responseByGap[responses[i].GapID] = &responses[i]
		}
	}

	items := make([]asset.WritebackItem, 0, len(resolved))
	for _, g := range resolved {
		item := asset.WritebackItem{GapID: g.ID, AssetID: g.AssetID}

		_, attribute, _ := questionnaire.SplitCompositeFieldID(g.FieldName)
		item.Attribute = attribute

		if response, ok := responseByGap[g.ID]; ok {
			item.Value = response.ResponseValue
			if item.AssetID == "" {
				item.AssetID = response.AssetID
			}
		}
		if item.AssetID == "" {
			item.AssetID = meta.AssetID
		}
		items = append(items, item)
	}
	return items
}

// answerFieldIDs returns the submitted field identifiers of the batch.
func answerFieldIDs(answers map[string]interface{}) []string {
	ids := make([]string, 0, len(answers))
	for fieldID, value := range answers {
		if gap.AnswerableField(fieldID, value) {
			ids = append(ids, fieldID)
		}
	}
	return ids
}
