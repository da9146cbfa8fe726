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

// Package store provides the implementation for questionnaire persistence operations.
package store

import (
	"github.com/migrata/compass/internal/system/database/model"
)

var (
	// QueryGetQuestionnairesByFlow is the query to list questionnaires for a flow.
	QueryGetQuestionnairesByFlow = model.DBQuery{
		ID: "QNQ-QNR-01",
		Query: "SELECT QUESTIONNAIRE_ID, FLOW_ID, TYPE, ASSET_ID, DESCRIPTION, COMPLETION_STATUS, " +
			"GENERATION_REASON, QUESTIONS, RESPONSES_COLLECTED, COMPLETED_AT, CREATED_AT " +
			"FROM ADAPTIVE_QUESTIONNAIRE WHERE FLOW_ID = $1 ORDER BY CREATED_AT",
	}

	// QueryGetQuestionnaireByID is the query to fetch a single questionnaire.
	QueryGetQuestionnaireByID = model.DBQuery{
		ID: "QNQ-QNR-02",
		Query: "SELECT QUESTIONNAIRE_ID, FLOW_ID, TYPE, ASSET_ID, DESCRIPTION, COMPLETION_STATUS, " +
			"GENERATION_REASON, QUESTIONS, RESPONSES_COLLECTED, COMPLETED_AT, CREATED_AT " +
			"FROM ADAPTIVE_QUESTIONNAIRE WHERE QUESTIONNAIRE_ID = $1 AND FLOW_ID = $2",
	}

	// QueryCreateQuestionnaire is the query to create a new questionnaire record.
	QueryCreateQuestionnaire = model.DBQuery{
		ID: "QNQ-QNR-03",
		Query: "INSERT INTO ADAPTIVE_QUESTIONNAIRE (QUESTIONNAIRE_ID, FLOW_ID, TYPE, ASSET_ID, " +
			"DESCRIPTION, COMPLETION_STATUS, GENERATION_REASON, QUESTIONS, CREATED_AT) " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
	}

	// QueryUpdateQuestionnaireCompletion is the query to update completion state
	// and the last-submitted answer snapshot.
	QueryUpdateQuestionnaireCompletion = model.DBQuery{
		ID: "QNQ-QNR-04",
		Query: "UPDATE ADAPTIVE_QUESTIONNAIRE SET COMPLETION_STATUS = $2, RESPONSES_COLLECTED = $3, " +
			"COMPLETED_AT = $4 WHERE QUESTIONNAIRE_ID = $1",
	}

	// QueryInsertResponse is the query to persist one response record.
	QueryInsertResponse = model.DBQuery{
		ID: "QNQ-QNR-05",
		Query: "INSERT INTO QUESTIONNAIRE_RESPONSE (RESPONSE_ID, COLLECTION_FLOW_ID, QUESTIONNAIRE_ID, " +
			"GAP_ID, ASSET_ID, QUESTION_ID, RESPONSE_VALUE, RESPONSE_TYPE, VALIDATION_STATUS, " +
			"RESPONDED_BY, RESPONDED_AT) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)",
	}

	// QueryGetValidatedQuestionIDs is the query to list the question IDs of
	// validated responses for a flow.
	QueryGetValidatedQuestionIDs = model.DBQuery{
		ID: "QNQ-QNR-06",
		Query: "SELECT DISTINCT QUESTION_ID FROM QUESTIONNAIRE_RESPONSE " +
			"WHERE COLLECTION_FLOW_ID = $1 AND VALIDATION_STATUS = 'validated'",
	}
)
