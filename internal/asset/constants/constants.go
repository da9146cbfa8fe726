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

// Package constants defines the constants used by the asset domain.
package constants

// AssessmentReadiness represents the readiness state of an asset for assessment.
type AssessmentReadiness string

const (
	// AssessmentReadinessPending denotes an asset still awaiting data collection.
	AssessmentReadinessPending AssessmentReadiness = "pending"
	// AssessmentReadinessReady denotes an asset cleared for assessment.
	AssessmentReadinessReady AssessmentReadiness = "ready"
)

const (
	// AttributeBusinessCriticality is the custom attribute key for business criticality.
	AttributeBusinessCriticality = "business_criticality"
	// AttributeEnvironment is the custom attribute key for the deployment environment.
	AttributeEnvironment = "environment"
)
