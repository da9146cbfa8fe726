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

// Package collection provides the collection workflow orchestration service
// and acts as the entry point for flow lifecycle, submission and advancement.
package collection

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/migrata/compass/internal/appcatalog"
	assetstore "github.com/migrata/compass/internal/asset/store"
	"github.com/migrata/compass/internal/collection/constants"
	"github.com/migrata/compass/internal/collection/engine"
	"github.com/migrata/compass/internal/collection/model"
	"github.com/migrata/compass/internal/collection/phase"
	"github.com/migrata/compass/internal/collection/state"
	"github.com/migrata/compass/internal/collection/store"
	"github.com/migrata/compass/internal/gap"
	gapmodel "github.com/migrata/compass/internal/gap/model"
	qnrconstants "github.com/migrata/compass/internal/questionnaire/constants"
	"github.com/migrata/compass/internal/system/config"
	"github.com/migrata/compass/internal/system/error/serviceerror"
	"github.com/migrata/compass/internal/system/log"
	sysutils "github.com/migrata/compass/internal/system/utils"
)

const loggerComponentName = "CollectionService"

// canonicalIntegrationResultKey is the phase-result slot holding the
// reviewing-phase canonical application summary.
const canonicalIntegrationResultKey = "canonical_integration"

// CollectionServiceInterface is the exposed surface of the collection
// workflow orchestration engine.
type CollectionServiceInterface interface {
	CreateFlow(request model.CreateFlowRequest) (*model.CollectionFlowState, *serviceerror.ServiceError)
	GetFlow(flowID string, tenant model.TenantContext) (*model.CollectionFlowState, *serviceerror.ServiceError)
	DeleteFlow(flowID string, tenant model.TenantContext) *serviceerror.ServiceError
	Submit(flowID string, tenant model.TenantContext, request model.SubmitRequest) (
		*model.SubmitResult, *serviceerror.ServiceError)
	GetWorkflowStatus(flowID string, tenant model.TenantContext) (
		*model.WorkflowStatusResult, *serviceerror.ServiceError)
	Advance(flowID string, tenant model.TenantContext, force bool) (
		*model.AdvanceResult, *serviceerror.ServiceError)
	ListGaps(flowID string, tenant model.TenantContext) (
		[]gapmodel.CollectionDataGap, *serviceerror.ServiceError)
}

// collectionService is the implementation of CollectionServiceInterface.
type collectionService struct {
	flowStore    store.FlowStoreInterface
	phaseManager phase.ManagerInterface
	stateManager state.ManagerInterface
	engine       engine.EngineInterface
	gapService   gap.GapServiceInterface
	assetStore   assetstore.AssetStoreInterface
	appCatalog   appcatalog.CanonicalAppServiceInterface
}

// newCollectionService creates the orchestration service from its collaborators.
func newCollectionService(submissionEngine engine.EngineInterface,
	gapService gap.GapServiceInterface, assetStore assetstore.AssetStoreInterface,
	appCatalog appcatalog.CanonicalAppServiceInterface) CollectionServiceInterface {
	return &collectionService{
		flowStore:    store.NewFlowStore(),
		phaseManager: phase.NewManager(),
		stateManager: state.NewManager(),
		engine:       submissionEngine,
		gapService:   gapService,
		assetStore:   assetStore,
		appCatalog:   appCatalog,
	}
}

// CreateFlow creates a new collection flow positioned at the initial phase.
func (s *collectionService) CreateFlow(request model.CreateFlowRequest) (
	*model.CollectionFlowState, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if svcErr := request.Tenant.Validate(); svcErr != nil {
		return nil, svcErr
	}

	now := time.Now().UTC()
	flowState := &model.CollectionFlowState{
		FlowID:           sysutils.GenerateUUID(),
		Tenant:           request.Tenant,
		Progress:         model.NewWorkflowProgress(),
		SelectedAssetIDs: request.SelectedAssetIDs,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	flowState.SetPhase(constants.PhaseInitial)

	if err := s.flowStore.CreateFlowState(*flowState); err != nil {
		logger.Error("Failed to create flow state", log.Error(err))
		return nil, &constants.ErrorFlowStorePersistence
	}

	logger.Info("Created collection flow", log.String(log.LoggerKeyFlowID, flowState.FlowID))
	return flowState, nil
}

// GetFlow returns the flow state scoped to the tenant.
func (s *collectionService) GetFlow(flowID string, tenant model.TenantContext) (
	*model.CollectionFlowState, *serviceerror.ServiceError) {
	return s.loadFlow(flowID, tenant)
}

// DeleteFlow deletes the flow state scoped to the tenant.
func (s *collectionService) DeleteFlow(flowID string, tenant model.TenantContext) *serviceerror.ServiceError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if _, svcErr := s.loadFlow(flowID, tenant); svcErr != nil {
		return svcErr
	}
	if err := s.flowStore.DeleteFlowState(flowID, tenant); err != nil {
		logger.Error("Failed to delete flow state",
			log.String(log.LoggerKeyFlowID, flowID), log.Error(err))
		return &constants.ErrorFlowStorePersistence
	}
	return nil
}

// Submit processes one questionnaire submission against the flow: it runs the
// submission pipeline, records the submission on the progress record, applies
// any readiness flip, and performs the single defined auto-advance.
func (s *collectionService) Submit(flowID string, tenant model.TenantContext,
	request model.SubmitRequest) (*model.SubmitResult, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	saveType, svcErr := parseSaveType(request.SaveType)
	if svcErr != nil {
		return nil, svcErr
	}
	flowState, svcErr := s.loadFlow(flowID, tenant)
	if svcErr != nil {
		return nil, svcErr
	}

	now := time.Now().UTC()
	engineResult, err := s.engine.ProcessSubmission(flowState, request, saveType, now)
	if err != nil {
		logger.Error("Submission processing failed",
			log.String(log.LoggerKeyFlowID, flowID), log.Error(err))
		return nil, &constants.ErrorSubmissionPersistence
	}

	questionnaireType := s.resolveQuestionnaireType(flowState, request.QuestionnaireID, saveType)
	s.stateManager.RecordQuestionnaireSubmission(flowState, questionnaireType,
		model.SubmissionRecord{
			QuestionnaireID:      request.QuestionnaireID,
			CompletionPercentage: request.CompletionPercentage,
			SubmittedBy:          tenant.UserID,
			SubmittedAt:          now,
		})

	// The readiness flag only ever flips to true from this path.
	if decision := engineResult.ReadinessDecision; decision != nil && decision.Ready {
		flowState.AssessmentReady = true
		for _, assetID := range decision.ReadyAssetIDs {
			flowState.AppsReadyForAssessment = sysutils.AppendUnique(
				flowState.AppsReadyForAssessment, assetID)
		}
	}
	for _, warning := range engineResult.Warnings {
		flowState.AppendWarning(warning)
	}

	if next, ok := s.phaseManager.CheckAutoAdvancement(flowState); ok {
		s.phaseManager.TransitionToPhase(flowState, next, now)
	}

	flowState.UpdatedAt = now
	if err := s.flowStore.UpdateFlowState(*flowState); err != nil {
		logger.Error("Failed to persist flow state",
			log.String(log.LoggerKeyFlowID, flowID), log.Error(err))
		return nil, &constants.ErrorFlowStorePersistence
	}

	return &model.SubmitResult{
		ResponsesSaved:  engineResult.ResponsesSaved,
		GapsResolved:    engineResult.GapsResolved,
		FlowStatus:      flowState.Status,
		Progress:        flowState.Progress,
		AssessmentReady: flowState.AssessmentReady,
		WritebackFailed: engineResult.WritebackFailed,
		Warnings:        engineResult.Warnings,
	}, nil
}

// GetWorkflowStatus returns the full progress view of the flow, including the
// canonical integration summary when the reviewing phase has produced one.
func (s *collectionService) GetWorkflowStatus(flowID string, tenant model.TenantContext) (
	*model.WorkflowStatusResult, *serviceerror.ServiceError) {
	flowState, svcErr := s.loadFlow(flowID, tenant)
	if svcErr != nil {
		return nil, svcErr
	}

	return &model.WorkflowStatusResult{
		FlowID:                    flowState.FlowID,
		Status:                    flowState.Status,
		Progress:                  flowState.Progress,
		BootstrapCompleted:        flowState.Progress.BootstrapCompleted,
		DetailedCollectionStarted: flowState.Progress.DetailedCollectionStarted,
		ReviewPhaseEntered:        flowState.Progress.ReviewPhaseEntered,
		AssessmentReady:           flowState.AssessmentReady,
		AppsReadyForAssessment:    flowState.AppsReadyForAssessment,
		CanonicalIntegration:      extractIntegrationSummary(flowState),
	}, nil
}

// Advance moves the flow to its next phase when the completion report says it
// is ready, or unconditionally under force. The loop guard stops a phase from
// being re-entered past its iteration ceiling.
func (s *collectionService) Advance(flowID string, tenant model.TenantContext, force bool) (
	*model.AdvanceResult, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	flowState, svcErr := s.loadFlow(flowID, tenant)
	if svcErr != nil {
		return nil, svcErr
	}

	previous := flowState.CurrentPhase
	next, ok := s.phaseManager.GetNextPhase(previous)
	if !ok {
		return nil, &constants.ErrorNoNextPhase
	}

	report := s.DetectCompletionStatus(flowState)
	if !force && !report.ReadyForNextPhase {
		return &model.AdvanceResult{
			Advanced:        false,
			PreviousPhase:   previous,
			NewPhase:        previous,
			Recommendations: buildRecommendations(flowState, next),
		}, nil
	}

	now := time.Now().UTC()
	if !s.preventInfiniteLoops(flowState, next) {
		flowState.UpdatedAt = now
		if err := s.flowStore.UpdateFlowState(*flowState); err != nil {
			logger.Error("Failed to persist flow state",
				log.String(log.LoggerKeyFlowID, flowID), log.Error(err))
		}
		return nil, &constants.ErrorPhaseLoopDetected
	}

	s.phaseManager.TransitionToPhase(flowState, next, now)

	if next == constants.PhaseReviewing {
		s.runCanonicalIntegration(flowState)
	}

	if err := s.flowStore.UpdateFlowState(*flowState); err != nil {
		logger.Error("Failed to persist flow state",
			log.String(log.LoggerKeyFlowID, flowID), log.Error(err))
		return nil, &constants.ErrorFlowStorePersistence
	}

	return &model.AdvanceResult{
		Advanced:      true,
		PreviousPhase: previous,
		NewPhase:      next,
	}, nil
}

// ListGaps returns the flow's gap audit trail, resolved gaps included.
func (s *collectionService) ListGaps(flowID string, tenant model.TenantContext) (
	[]gapmodel.CollectionDataGap, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if _, svcErr := s.loadFlow(flowID, tenant); svcErr != nil {
		return nil, svcErr
	}
	gaps, err := s.gapService.ListGapsByFlow(flowID)
	if err != nil {
		logger.Error("Failed to list gaps",
			log.String(log.LoggerKeyFlowID, flowID), log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}
	return gaps, nil
}

// DetectCompletionStatus aggregates the flow's progress booleans into an
// advisory report. Enforcement stays with the phase manager; the report uses
// the same prerequisite predicates for its readiness verdict.
func (s *collectionService) DetectCompletionStatus(flowState *model.CollectionFlowState) model.CompletionReport {
	report := model.CompletionReport{
		CurrentPhase:              flowState.CurrentPhase,
		BootstrapCompleted:        flowState.Progress.BootstrapCompleted,
		DetailedCollectionStarted: flowState.Progress.DetailedCollectionStarted,
		ReviewPhaseEntered:        flowState.Progress.ReviewPhaseEntered,
		AssessmentReady:           flowState.AssessmentReady,
	}

	if next, ok := s.phaseManager.GetNextPhase(flowState.CurrentPhase); ok {
		report.NextPhase = &next
		report.ReadyForNextPhase = s.phaseManager.CanAdvanceToPhase(&flowState.Progress, next)
	}
	return report
}

// preventInfiniteLoops increments the phase's persisted iteration counter and
// reports whether entering the phase is still within the ceiling. On exceed it
// records a fatal error on the flow; counters never reset for the life of the
// flow state.
func (s *collectionService) preventInfiniteLoops(flowState *model.CollectionFlowState,
	target constants.CollectionPhase) bool {
	maxIterations := config.GetCompassRuntime().Config.Collection.MaxPhaseIterations
	if maxIterations <= 0 {
		maxIterations = constants.DefaultMaxPhaseIterations
	}

	if flowState.Progress.PhaseIterations == nil {
		flowState.Progress.PhaseIterations = make(map[string]int)
	}
	flowState.Progress.PhaseIterations[string(target)]++

	if flowState.Progress.PhaseIterations[string(target)] > maxIterations {
		flowState.AppendError(fmt.Sprintf("phase %s exceeded %d iterations", target, maxIterations))
		flowState.Status = constants.FlowStatusError
		return false
	}
	return true
}

// runCanonicalIntegration matches the selected assets' names against the
// canonical application catalog on entry into the reviewing phase. Failure
// here is logged and never blocks the advancement.
func (s *collectionService) runCanonicalIntegration(flowState *model.CollectionFlowState) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	assets, err := s.assetStore.GetAssetsByIDs(flowState.SelectedAssetIDs)
	if err != nil {
		logger.Warn("Canonical integration skipped: failed to load assets",
			log.String(log.LoggerKeyFlowID, flowState.FlowID), log.Error(err))
		flowState.AppendWarning("canonical application integration skipped")
		return
	}

	names := make([]string, 0, len(assets))
	for i := range assets {
		names = append(names, assets[i].Name)
	}

	summary, err := s.appCatalog.MatchApplications(names)
	if err != nil {
		logger.Warn("Canonical application matching failed",
			log.String(log.LoggerKeyFlowID, flowState.FlowID), log.Error(err))
		flowState.AppendWarning("canonical application integration failed")
		return
	}

	if flowState.PhaseResults == nil {
		flowState.PhaseResults = make(map[string]map[string]interface{})
	}
	if _, ok := flowState.PhaseResults[string(constants.PhaseReviewing)]; !ok {
		flowState.PhaseResults[string(constants.PhaseReviewing)] = make(map[string]interface{})
	}
	flowState.PhaseResults[string(constants.PhaseReviewing)][canonicalIntegrationResultKey] = summary
}

// resolveQuestionnaireType finds the submitted questionnaire's type among the
// flow's descriptors and keeps the descriptor's completion status current.
func (s *collectionService) resolveQuestionnaireType(flowState *model.CollectionFlowState,
	questionnaireID string, saveType qnrconstants.SaveType) qnrconstants.QuestionnaireType {
	for i := range flowState.Questionnaires {
		if flowState.Questionnaires[i].ID == questionnaireID {
			if saveType == qnrconstants.SaveTypeComplete {
				flowState.Questionnaires[i].CompletionStatus = qnrconstants.CompletionStatusCompleted
			} else {
				flowState.Questionnaires[i].CompletionStatus = qnrconstants.CompletionStatusInProgress
			}
			return flowState.Questionnaires[i].Type
		}
	}
	return qnrconstants.QuestionnaireTypeBootstrap
}

// loadFlow validates the identifiers and loads the tenant-scoped flow state.
func (s *collectionService) loadFlow(flowID string, tenant model.TenantContext) (
	*model.CollectionFlowState, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if svcErr := tenant.Validate(); svcErr != nil {
		return nil, svcErr
	}
	if !sysutils.IsValidUUID(flowID) {
		return nil, &constants.ErrorInvalidFlowID
	}

	flowState, err := s.flowStore.GetFlowState(flowID, tenant)
	if err != nil {
		logger.Error("Failed to load flow state",
			log.String(log.LoggerKeyFlowID, flowID), log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}
	if flowState == nil {
		return nil, &constants.ErrorFlowNotFound
	}
	return flowState, nil
}

// parseSaveType validates the submitted save type.
func parseSaveType(raw string) (qnrconstants.SaveType, *serviceerror.ServiceError) {
	switch qnrconstants.SaveType(raw) {
	case qnrconstants.SaveTypeProgress:
		return qnrconstants.SaveTypeProgress, nil
	case qnrconstants.SaveTypeComplete:
		return qnrconstants.SaveTypeComplete, nil
	default:
		return "", &constants.ErrorInvalidSaveType
	}
}

// buildRecommendations names the unmet prerequisite for the next phase.
func buildRecommendations(flowState *model.CollectionFlowState,
	next constants.CollectionPhase) []string {
	switch next {
	case constants.PhaseCollectingDetailed:
		if !flowState.Progress.BootstrapCompleted {
			return []string{"complete the bootstrap questionnaire before detailed collection"}
		}
	case constants.PhaseReviewing:
		if !flowState.Progress.DetailedCollectionStarted {
			return []string{"start detailed collection before reviewing"}
		}
	case constants.PhaseComplete:
		if !flowState.Progress.ReviewPhaseEntered {
			return []string{"enter the review phase before completing the flow"}
		}
	}
	return nil
}

// extractIntegrationSummary reads the reviewing-phase canonical integration
// summary back out of the phase results, tolerating the map form it takes
// after a round trip through persistence.
func extractIntegrationSummary(flowState *model.CollectionFlowState) *appcatalog.IntegrationSummary {
	phaseResult, ok := flowState.PhaseResults[string(constants.PhaseReviewing)]
	if !ok {
		return nil
	}
	raw, ok := phaseResult[canonicalIntegrationResultKey]
	if !ok {
		return nil
	}

	if summary, ok := raw.(*appcatalog.IntegrationSummary); ok {
		return summary
	}
	serialized, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var summary appcatalog.IntegrationSummary
	if err := json.Unmarshal(serialized, &summary); err != nil {
		return nil
	}
	return &summary
}
