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

// Package store provides the implementation for collection flow state persistence.
package store

import (
	"github.com/migrata/compass/internal/system/database/model"
)

var (
	// QueryCreateFlowState is the query to insert a new collection flow state.
	QueryCreateFlowState = model.DBQuery{
		ID: "CFQ-FLW-01",
		Query: "INSERT INTO COLLECTION_FLOW_STATE (FLOW_ID, CLIENT_ACCOUNT_ID, ENGAGEMENT_ID, " +
			"USER_ID, STATUS, CURRENT_PHASE, PHASE_STATE, PHASE_RESULTS, QUESTIONNAIRES, " +
			"SELECTED_ASSET_IDS, ASSESSMENT_READY, APPS_READY, ERRORS, WARNINGS, CREATED_AT, " +
			"UPDATED_AT) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, " +
			"$15, $16)",
	}

	// QueryGetFlowState is the query to fetch one flow state scoped to its tenant.
	QueryGetFlowState = model.DBQuery{
		ID: "CFQ-FLW-02",
		Query: "SELECT FLOW_ID, CLIENT_ACCOUNT_ID, ENGAGEMENT_ID, USER_ID, STATUS, CURRENT_PHASE, " +
			"PHASE_STATE, PHASE_RESULTS, QUESTIONNAIRES, SELECTED_ASSET_IDS, ASSESSMENT_READY, " +
			"APPS_READY, ERRORS, WARNINGS, CREATED_AT, UPDATED_AT FROM COLLECTION_FLOW_STATE " +
			"WHERE FLOW_ID = $1 AND CLIENT_ACCOUNT_ID = $2 AND ENGAGEMENT_ID = $3",
	}

	// QueryUpdateFlowState is the query to persist the mutated flow state.
	QueryUpdateFlowState = model.DBQuery{
		ID: "CFQ-FLW-03",
		Query: "UPDATE COLLECTION_FLOW_STATE SET STATUS = $4, CURRENT_PHASE = $5, PHASE_STATE = $6, " +
			"PHASE_RESULTS = $7, QUESTIONNAIRES = $8, SELECTED_ASSET_IDS = $9, ASSESSMENT_READY = $10, " +
			"APPS_READY = $11, ERRORS = $12, WARNINGS = $13, UPDATED_AT = $14 " +
			"WHERE FLOW_ID = $1 AND CLIENT_ACCOUNT_ID = $2 AND ENGAGEMENT_ID = $3",
	}

	// QueryDeleteFlowState is the query to delete a flow state.
	QueryDeleteFlowState = model.DBQuery{
		ID: "CFQ-FLW-04",
		Query: "DELETE FROM COLLECTION_FLOW_STATE WHERE FLOW_ID = $1 AND CLIENT_ACCOUNT_ID = $2 " +
			"AND ENGAGEMENT_ID = $3",
	}
)
