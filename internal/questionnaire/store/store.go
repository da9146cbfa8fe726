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

package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/migrata/compass/internal/questionnaire/constants"
	"github.com/migrata/compass/internal/questionnaire/model"
	dbmodel "github.com/migrata/compass/internal/system/database/model"
	"github.com/migrata/compass/internal/system/database/provider"
	"github.com/migrata/compass/internal/system/log"
)

const loggerComponentName = "QuestionnaireStore"

// QuestionnaireStoreInterface defines the persistence operations for questionnaires
// and their responses.
type QuestionnaireStoreInterface interface {
	GetQuestionnairesByFlow(flowID string) ([]model.AdaptiveQuestionnaire, error)
	GetQuestionnaireByID(questionnaireID, flowID string) (*model.AdaptiveQuestionnaire, error)
	CreateQuestionnaire(q model.AdaptiveQuestionnaire) error
	UpdateCompletionTx(tx dbmodel.TxInterface, questionnaireID string,
		status constants.CompletionStatus, responsesCollected map[string]interface{},
		completedAt *time.Time) error
	InsertResponseTx(tx dbmodel.TxInterface, response model.QuestionnaireResponse) error
	GetValidatedQuestionIDs(flowID string) ([]string, error)
}

// QuestionnaireStore is the implementation of QuestionnaireStoreInterface backed
// by the inventory database.
type QuestionnaireStore struct {
	DBProvider provider.DBProviderInterface
}

// NewQuestionnaireStore creates a new questionnaire store instance.
func NewQuestionnaireStore() QuestionnaireStoreInterface {
	return &QuestionnaireStore{
		DBProvider: provider.GetDBProvider(),
	}
}

// GetQuestionnairesByFlow returns the questionnaires generated for the flow,
// oldest first.
func (s *QuestionnaireStore) GetQuestionnairesByFlow(flowID string) ([]model.AdaptiveQuestionnaire, error) {
	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameInventory)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetQuestionnairesByFlow, flowID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	questionnaires := make([]model.AdaptiveQuestionnaire, 0, len(results))
	for _, row := range results {
		q, err := buildQuestionnaireFromResultRow(row)
		if err != nil {
			return nil, err
		}
		questionnaires = append(questionnaires, *q)
	}
	return questionnaires, nil
}

// GetQuestionnaireByID returns the questionnaire with the given ID scoped to
// the flow, or nil when absent.
func (s *QuestionnaireStore) GetQuestionnaireByID(questionnaireID, flowID string) (
	*model.AdaptiveQuestionnaire, error) {
	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameInventory)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetQuestionnaireByID, questionnaireID, flowID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return buildQuestionnaireFromResultRow(results[0])
}

// CreateQuestionnaire persists a new questionnaire record.
func (s *QuestionnaireStore) CreateQuestionnaire(q model.AdaptiveQuestionnaire) error {
	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameInventory)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	questionsJSON, err := json.Marshal(q.Questions)
	if err != nil {
		return fmt.Errorf("failed to serialize questions: %w", err)
	}

	_, err = dbClient.Execute(QueryCreateQuestionnaire, q.ID, q.FlowID, string(q.Type),
		nullableString(q.AssetID), nullableString(q.Description), string(q.CompletionStatus),
		nullableString(string(q.GenerationReason)), string(questionsJSON), q.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create questionnaire: %w", err)
	}
	return nil
}

// UpdateCompletionTx updates the questionnaire's completion state and answer
// snapshot within the given transaction.
func (s *QuestionnaireStore) UpdateCompletionTx(tx dbmodel.TxInterface, questionnaireID string,
	status constants.CompletionStatus, responsesCollected map[string]interface{},
	completedAt *time.Time) error {
	snapshotJSON, err := json.Marshal(responsesCollected)
	if err != nil {
		return fmt.Errorf("failed to serialize response snapshot: %w", err)
	}

	var completedAtArg interface{}
	if completedAt != nil {
		completedAtArg = *completedAt
	}

	if _, err := tx.ExecQuery(QueryUpdateQuestionnaireCompletion, questionnaireID,
		string(status), string(snapshotJSON), completedAtArg); err != nil {
		return fmt.Errorf("failed to update questionnaire completion: %w", err)
	}
	return nil
}

// InsertResponseTx persists one response record within the given transaction.
func (s *QuestionnaireStore) InsertResponseTx(tx dbmodel.TxInterface,
	response model.QuestionnaireResponse) error {
	if _, err := tx.ExecQuery(QueryInsertResponse, response.ID, response.CollectionFlowID,
		response.QuestionnaireID, nullableString(response.GapID), nullableString(response.AssetID),
		response.QuestionID, response.ResponseValue, response.ResponseType,
		string(response.ValidationStatus), response.RespondedBy, response.RespondedAt); err != nil {
		return fmt.Errorf("failed to insert response: %w", err)
	}
	return nil
}

// GetValidatedQuestionIDs returns the distinct question IDs of validated
// responses recorded for the flow.
func (s *QuestionnaireStore) GetValidatedQuestionIDs(flowID string) ([]string, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.DBProvider.GetDBClient(provider.DBNameInventory)
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetValidatedQuestionIDs, flowID)
	if err != nil {
		logger.Error("Failed to execute query", log.Error(err))
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	ids := make([]string, 0, len(results))
	for _, row := range results {
		if id, ok := row["question_id"].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// buildQuestionnaireFromResultRow builds an AdaptiveQuestionnaire from a database result row.
func buildQuestionnaireFromResultRow(row map[string]interface{}) (*model.AdaptiveQuestionnaire, error) {
	questionnaireID, ok := row["questionnaire_id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse questionnaire_id as string")
	}
	flowID, ok := row["flow_id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse flow_id as string")
	}

	q := &model.AdaptiveQuestionnaire{
		ID:               questionnaireID,
		FlowID:           flowID,
		Type:             constants.QuestionnaireType(parseOptionalString(row["type"])),
		AssetID:          parseOptionalString(row["asset_id"]),
		Description:      parseOptionalString(row["description"]),
		CompletionStatus: constants.CompletionStatus(parseOptionalString(row["completion_status"])),
		GenerationReason: constants.GenerationReason(parseOptionalString(row["generation_reason"])),
	}

	if raw := parseOptionalString(row["questions"]); raw != "" {
		var questions []model.Question
		if err := json.Unmarshal([]byte(raw), &questions); err != nil {
			return nil, fmt.Errorf("failed to parse questions for questionnaire %s: %w",
				questionnaireID, err)
		}
		q.Questions = questions
	}

	if raw := parseOptionalString(row["responses_collected"]); raw != "" {
		snapshot := make(map[string]interface{})
		if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
			return nil, fmt.Errorf("failed to parse response snapshot for questionnaire %s: %w",
				questionnaireID, err)
		}
		q.ResponsesCollected = snapshot
	}

	if t, ok := row["completed_at"].(time.Time); ok {
		q.CompletedAt = &t
	}
	if t, ok := row["created_at"].(time.Time); ok {
		q.CreatedAt = t
	}
	return q, nil
}

// parseOptionalString safely parses an optional string field from the database row.
func parseOptionalString(value interface{}) string {
	if value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	return ""
}

// nullableString converts an empty string to nil for nullable columns.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
