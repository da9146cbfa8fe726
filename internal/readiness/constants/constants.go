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

// Package constants defines the constants used by the assessment readiness gate.
package constants

// DefaultBusinessCriticalityQuestionIDs is the built-in list of question
// identifiers that satisfy the business criticality requirement when the
// deployment configuration does not provide one.
var DefaultBusinessCriticalityQuestionIDs = []string{
	"business_criticality",
	"criticality",
	"business_impact",
}

// DefaultEnvironmentQuestionIDs is the built-in list of question identifiers
// that satisfy the environment requirement when the deployment configuration
// does not provide one.
var DefaultEnvironmentQuestionIDs = []string{
	"environment",
	"deployment_environment",
	"technical_environment",
}
