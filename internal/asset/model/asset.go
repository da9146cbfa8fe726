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

// Package model defines the data structures for the asset domain.
package model

import (
	"github.com/migrata/compass/internal/asset/constants"
	sysutils "github.com/migrata/compass/internal/system/utils"
)

// Asset represents an inventory asset referenced by collection flows. The
// collection engine reads and writes only the assessment-relevant fields;
// the asset record itself is owned by the inventory side.
type Asset struct {
	ID                  string                        `json:"id"`
	Name                string                        `json:"name"`
	Criticality         string                        `json:"criticality,omitempty"`
	Environment         string                        `json:"environment,omitempty"`
	CustomAttributes    map[string]string             `json:"custom_attributes,omitempty"`
	AssessmentReadiness constants.AssessmentReadiness `json:"assessment_readiness"`
	SixRReady           bool                          `json:"sixr_ready"`
}

// HasBusinessCriticality reports whether the asset already carries a business
// criticality value, either on the dedicated column or as a custom attribute.
func (a *Asset) HasBusinessCriticality() bool {
	if !sysutils.IsBlank(a.Criticality) {
		return true
	}
	return !sysutils.IsBlank(a.CustomAttributes[constants.AttributeBusinessCriticality])
}

// HasEnvironment reports whether the asset already carries an environment
// value, either on the dedicated column or as a custom attribute.
func (a *Asset) HasEnvironment() bool {
	if !sysutils.IsBlank(a.Environment) {
		return true
	}
	return !sysutils.IsBlank(a.CustomAttributes[constants.AttributeEnvironment])
}
