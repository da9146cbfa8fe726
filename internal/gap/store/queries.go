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

// Package store provides the implementation for collection data gap persistence operations.
package store

import (
	"github.com/migrata/compass/internal/system/database/model"
)

var (
	// QueryGetPendingGapsByFlow is the query to list pending gaps for a flow.
	QueryGetPendingGapsByFlow = model.DBQuery{
		ID: "GAQ-GAP-01",
		Query: "SELECT GAP_ID, FLOW_ID, ASSET_ID, FIELD_NAME, DESCRIPTION, RESOLUTION_STATUS, " +
			"RESOLVED_AT, RESOLVED_BY, CREATED_AT FROM COLLECTION_DATA_GAP " +
			"WHERE FLOW_ID = $1 AND RESOLUTION_STATUS = 'pending'",
	}

	// QueryGetGapsByFlow is the query to list all gaps for a flow regardless of status.
	QueryGetGapsByFlow = model.DBQuery{
		ID: "GAQ-GAP-02",
		Query: "SELECT GAP_ID, FLOW_ID, ASSET_ID, FIELD_NAME, DESCRIPTION, RESOLUTION_STATUS, " +
			"RESOLVED_AT, RESOLVED_BY, CREATED_AT FROM COLLECTION_DATA_GAP WHERE FLOW_ID = $1",
	}

	// QueryResolveGap is the query to mark a gap resolved. The status predicate
	// keeps a concurrent second resolution a no-op.
	QueryResolveGap = model.DBQuery{
		ID: "GAQ-GAP-03",
		Query: "UPDATE COLLECTION_DATA_GAP SET RESOLUTION_STATUS = 'resolved', RESOLVED_AT = $2, " +
			"RESOLVED_BY = $3 WHERE GAP_ID = $1 AND RESOLUTION_STATUS = 'pending'",
	}

	// QueryCreateGap is the query to create a new data gap record.
	QueryCreateGap = model.DBQuery{
		ID: "GAQ-GAP-04",
		Query: "INSERT INTO COLLECTION_DATA_GAP (GAP_ID, FLOW_ID, ASSET_ID, FIELD_NAME, " +
			"DESCRIPTION, RESOLUTION_STATUS, CREATED_AT) VALUES ($1, $2, $3, $4, $5, $6, $7)",
	}
)
