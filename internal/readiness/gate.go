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

// Package readiness implements the assessment readiness gate that decides when
// a collection flow and its assets may proceed to strategy assessment.
package readiness

import (
	assetmodel "github.com/migrata/compass/internal/asset/model"
	assetstore "github.com/migrata/compass/internal/asset/store"
	"github.com/migrata/compass/internal/questionnaire"
	qnrconstants "github.com/migrata/compass/internal/questionnaire/constants"
	qnrmodel "github.com/migrata/compass/internal/questionnaire/model"
	qnrstore "github.com/migrata/compass/internal/questionnaire/store"
	"github.com/migrata/compass/internal/readiness/constants"
	"github.com/migrata/compass/internal/system/config"
	"github.com/migrata/compass/internal/system/log"
	sysutils "github.com/migrata/compass/internal/system/utils"
)

const loggerComponentName = "AssessmentReadinessGate"

// EvaluationInput carries everything the gate inspects for one flow.
type EvaluationInput struct {
	FlowID string
	// SelectedAssetIDs are the assets in scope for the flow, from flow metadata.
	SelectedAssetIDs []string
	// Questionnaires is the flow's current questionnaire list, including any
	// completion flips performed earlier in the same submission.
	Questionnaires []qnrmodel.AdaptiveQuestionnaire
	// BatchQuestionIDs are the question identifiers of the just-submitted,
	// possibly still-pending batch. Unioned with validated responses so
	// readiness can flip within the request that completed the last answer.
	BatchQuestionIDs []string
}

// Decision is the gate's verdict. Ready flips only to true here; it never
// reverts an earlier positive decision.
type Decision struct {
	Ready                        bool     `json:"ready"`
	BusinessCriticalitySatisfied bool     `json:"business_criticality_satisfied"`
	EnvironmentSatisfied         bool     `json:"environment_satisfied"`
	QuestionnairesComplete       bool     `json:"questionnaires_complete"`
	ReadyAssetIDs                []string `json:"ready_asset_ids,omitempty"`
	BlockingAssetIDs             []string `json:"blocking_asset_ids,omitempty"`
}

// GateInterface evaluates assessment readiness after a completing submission.
type GateInterface interface {
	Evaluate(input EvaluationInput) Decision
}

// gate is the implementation of GateInterface.
type gate struct {
	questionnaireStore qnrstore.QuestionnaireStoreInterface
	assetStore         assetstore.AssetStoreInterface
}

// NewGate creates a new readiness gate backed by the given stores.
func NewGate(questionnaireStore qnrstore.QuestionnaireStoreInterface,
	assetStore assetstore.AssetStoreInterface) GateInterface {
	return &gate{
		questionnaireStore: questionnaireStore,
		assetStore:         assetStore,
	}
}

// Evaluate runs the readiness algorithm. Any failure during evaluation is
// caught, logged, and treated as "not yet ready"; the gate must never abort
// the submission that triggered it.
func (g *gate) Evaluate(input EvaluationInput) Decision {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	questionIDs, err := g.collectQuestionIDs(input)
	if err != nil {
		logger.Error("Readiness evaluation failed to collect responses",
			log.String(log.LoggerKeyFlowID, input.FlowID), log.Error(err))
		return Decision{}
	}

	assets, err := g.assetStore.GetAssetsByIDs(input.SelectedAssetIDs)
	if err != nil {
		logger.Error("Readiness evaluation failed to load assets",
			log.String(log.LoggerKeyFlowID, input.FlowID), log.Error(err))
		return Decision{}
	}

	decision := Decision{
		BusinessCriticalitySatisfied: g.criticalitySatisfied(questionIDs, assets),
		EnvironmentSatisfied:         g.environmentSatisfied(questionIDs, assets),
	}

	blocking := classifyBlockingAssets(input.SelectedAssetIDs, input.Questionnaires)
	decision.QuestionnairesComplete = len(blocking) == 0
	decision.BlockingAssetIDs = blocking

	if !decision.BusinessCriticalitySatisfied || !decision.EnvironmentSatisfied ||
		!decision.QuestionnairesComplete {
		return decision
	}

	if err := g.assetStore.MarkAssessmentReady(input.SelectedAssetIDs); err != nil {
		logger.Error("Failed to mark assets assessment ready",
			log.String(log.LoggerKeyFlowID, input.FlowID), log.Error(err))
		return decision
	}

	decision.Ready = true
	decision.ReadyAssetIDs = input.SelectedAssetIDs
	logger.Info("Flow evaluated assessment ready",
		log.String(log.LoggerKeyFlowID, input.FlowID),
		log.Int("assets", len(input.SelectedAssetIDs)))
	return decision
}

// collectQuestionIDs unions the flow's validated question IDs with the
// just-submitted batch, normalizing composite field identifiers down to their
// attribute names so either form can satisfy a requirement.
func (g *gate) collectQuestionIDs(input EvaluationInput) (map[string]bool, error) {
	validated, err := g.questionnaireStore.GetValidatedQuestionIDs(input.FlowID)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]bool, len(validated)+len(input.BatchQuestionIDs))
	for _, id := range append(validated, input.BatchQuestionIDs...) {
		if sysutils.IsBlank(id) {
			continue
		}
		ids[id] = true
		if _, attribute, ok := questionnaire.SplitCompositeFieldID(id); ok {
			ids[attribute] = true
		}
	}
	return ids, nil
}

// criticalitySatisfied applies the OR across sources: either a satisfying
// question was answered, or any selected asset already carries the value.
func (g *gate) criticalitySatisfied(questionIDs map[string]bool,
	assets []assetmodel.Asset) bool {
	if intersects(questionIDs, configuredCriticalityQuestionIDs()) {
		return true
	}
	for i := range assets {
		if assets[i].HasBusinessCriticality() {
			return true
		}
	}
	return false
}

// environmentSatisfied applies the same OR across sources for the environment
// requirement.
func (g *gate) environmentSatisfied(questionIDs map[string]bool,
	assets []assetmodel.Asset) bool {
	if intersects(questionIDs, configuredEnvironmentQuestionIDs()) {
		return true
	}
	for i := range assets {
		if assets[i].HasEnvironment() {
			return true
		}
	}
	return false
}

// classifyBlockingAssets returns the selected assets blocked by at least one
// questionnaire that is neither completed nor a benign generation failure.
// An asset with no questionnaire at all is never blocking: no gaps were ever
// found for it.
func classifyBlockingAssets(selectedAssetIDs []string,
	questionnaires []qnrmodel.AdaptiveQuestionnaire) []string {
	selected := make(map[string]bool, len(selectedAssetIDs))
	for _, id := range selectedAssetIDs {
		selected[id] = true
	}

	blocking := make([]string, 0)
	for i := range questionnaires {
		q := &questionnaires[i]
		if q.CompletionStatus == qnrconstants.CompletionStatusCompleted || q.BenignFailure() {
			continue
		}
		for _, assetID := range q.TargetAssetIDs() {
			if selected[assetID] {
				blocking = sysutils.AppendUnique(blocking, assetID)
			}
		}
	}
	return blocking
}

// intersects reports whether any satisfying identifier appears in the
// collected question-id set.
func intersects(questionIDs map[string]bool, satisfying []string) bool {
	for _, id := range satisfying {
		if questionIDs[id] {
			return true
		}
	}
	return false
}

// configuredCriticalityQuestionIDs returns the configured satisfying list or
// the built-in default when the configuration is absent.
func configuredCriticalityQuestionIDs() []string {
	cfg := config.GetCompassRuntime().Config.Collection.Readiness
	if len(cfg.BusinessCriticalityQuestionIDs) > 0 {
		return cfg.BusinessCriticalityQuestionIDs
	}
	return constants.DefaultBusinessCriticalityQuestionIDs
}

// configuredEnvironmentQuestionIDs returns the configured satisfying list or
// the built-in default when the configuration is absent.
func configuredEnvironmentQuestionIDs() []string {
	cfg := config.GetCompassRuntime().Config.Collection.Readiness
	if len(cfg.EnvironmentQuestionIDs) > 0 {
		return cfg.EnvironmentQuestionIDs
	}
	return constants.DefaultEnvironmentQuestionIDs
}
