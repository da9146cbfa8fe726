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

// Package store provides the implementation for asset persistence operations.
package store

import (
	"fmt"
	"strings"

	"github.com/migrata/compass/internal/system/database/model"
)

var (
	// QueryGetAssetByID is the query to fetch a single asset record.
	QueryGetAssetByID = model.DBQuery{
		ID: "ASQ-AST-01",
		Query: "SELECT ASSET_ID, NAME, CRITICALITY, ENVIRONMENT, CUSTOM_ATTRIBUTES, " +
			"ASSESSMENT_READINESS, SIXR_READY FROM ASSET WHERE ASSET_ID = $1",
	}

	// QueryUpdateAssetCriticality is the query to set the dedicated criticality column.
	QueryUpdateAssetCriticality = model.DBQuery{
		ID:    "ASQ-AST-02",
		Query: "UPDATE ASSET SET CRITICALITY = $2 WHERE ASSET_ID = $1",
	}

	// QueryUpdateAssetEnvironment is the query to set the dedicated environment column.
	QueryUpdateAssetEnvironment = model.DBQuery{
		ID:    "ASQ-AST-03",
		Query: "UPDATE ASSET SET ENVIRONMENT = $2 WHERE ASSET_ID = $1",
	}

	// QueryUpdateAssetCustomAttributes is the query to replace the custom attribute document.
	QueryUpdateAssetCustomAttributes = model.DBQuery{
		ID:    "ASQ-AST-04",
		Query: "UPDATE ASSET SET CUSTOM_ATTRIBUTES = $2 WHERE ASSET_ID = $1",
	}
)

// buildGetAssetsByIDsQuery builds the list query with an IN clause sized to
// the number of asset IDs.
func buildGetAssetsByIDsQuery(assetIDs []string) (model.DBQuery, []interface{}) {
	placeholders := make([]string, 0, len(assetIDs))
	args := make([]interface{}, 0, len(assetIDs))
	for i, id := range assetIDs {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, id)
	}

	query := model.DBQuery{
		ID: "ASQ-AST-05",
		Query: "SELECT ASSET_ID, NAME, CRITICALITY, ENVIRONMENT, CUSTOM_ATTRIBUTES, " +
			"ASSESSMENT_READINESS, SIXR_READY FROM ASSET WHERE ASSET_ID IN (" +
			strings.Join(placeholders, ", ") + ")",
	}
	return query, args
}

// buildMarkAssessmentReadyQuery builds the bulk readiness update with an IN
// clause sized to the number of asset IDs. The readiness value is $1.
func buildMarkAssessmentReadyQuery(assetIDs []string) (model.DBQuery, []interface{}) {
	placeholders := make([]string, 0, len(assetIDs))
	args := make([]interface{}, 0, len(assetIDs)+1)
	args = append(args, nil) // reserved for the readiness value
	for i, id := range assetIDs {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		args = append(args, id)
	}

	query := model.DBQuery{
		ID: "ASQ-AST-06",
		Query: "UPDATE ASSET SET ASSESSMENT_READINESS = $1, SIXR_READY = TRUE " +
			"WHERE ASSET_ID IN (" + strings.Join(placeholders, ", ") + ")",
	}
	return query, args
}
