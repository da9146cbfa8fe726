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

package appcatalog

import (
	"github.com/migrata/compass/internal/system/database/model"
)

var (
	// QueryMatchCanonicalApp is the query to match one raw name against the
	// canonical application catalog, exact name or registered alias.
	QueryMatchCanonicalApp = model.DBQuery{
		ID: "ACQ-APP-01",
		Query: "SELECT APP_ID, NAME FROM CANONICAL_APPLICATION " +
			"WHERE LOWER(NAME) = LOWER($1) OR APP_ID IN " +
			"(SELECT APP_ID FROM CANONICAL_APPLICATION_ALIAS WHERE LOWER(ALIAS) = LOWER($1))",
	}
)
