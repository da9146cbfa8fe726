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

// Package questionnaire provides questionnaire tracking and response recording
// for collection flows.
package questionnaire

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/migrata/compass/internal/gap"
	"github.com/migrata/compass/internal/questionnaire/constants"
	"github.com/migrata/compass/internal/questionnaire/model"
	"github.com/migrata/compass/internal/questionnaire/store"
	dbmodel "github.com/migrata/compass/internal/system/database/model"
	"github.com/migrata/compass/internal/system/log"
	sysutils "github.com/migrata/compass/internal/system/utils"
)

// SplitCompositeFieldID splits a composite field identifier of the form
// "<assetID>__<attribute>" on the first delimiter occurrence. The prefix is
// accepted as an asset identifier only when it parses as a UUID; otherwise
// ok is false and the field id stands as a plain attribute name.
func SplitCompositeFieldID(fieldID string) (assetID, attribute string, ok bool) {
	idx := strings.Index(fieldID, constants.CompositeFieldDelimiter)
	if idx < 0 {
		return "", fieldID, false
	}

	prefix := fieldID[:idx]
	suffix := fieldID[idx+len(constants.CompositeFieldDelimiter):]
	if !sysutils.IsValidUUID(prefix) {
		return "", fieldID, false
	}
	return prefix, suffix, true
}

// assetIDResolver attempts to resolve the asset linkage for one submitted
// field. Resolvers are tried in order until one yields a non-empty result.
type assetIDResolver func(fieldID string, meta model.SubmissionMetadata) string

// resolveFromCompositeFieldID extracts the asset identifier prefix from a
// composite field id.
func resolveFromCompositeFieldID(fieldID string, _ model.SubmissionMetadata) string {
	assetID, _, ok := SplitCompositeFieldID(fieldID)
	if !ok {
		return ""
	}
	return assetID
}

// resolveFromFlowDefault falls back to the submission's flow-level asset.
func resolveFromFlowDefault(_ string, meta model.SubmissionMetadata) string {
	return meta.AssetID
}

// ResponseRecorderInterface converts submitted answer payloads into persisted
// response records with gap and asset linkage.
type ResponseRecorderInterface interface {
	Record(tx dbmodel.TxInterface, flowID, questionnaireID string,
		answers map[string]interface{}, meta model.SubmissionMetadata, respondedBy string,
		index *gap.GapIndex, respondedAt time.Time) ([]model.QuestionnaireResponse, error)
}

// responseRecorder is the implementation of ResponseRecorderInterface.
type responseRecorder struct {
	questionnaireStore store.QuestionnaireStoreInterface
	assetResolvers     []assetIDResolver
}

// NewResponseRecorder creates a new response recorder backed by the given store.
func NewResponseRecorder(questionnaireStore store.QuestionnaireStoreInterface) ResponseRecorderInterface {
	return &responseRecorder{
		questionnaireStore: questionnaireStore,
		assetResolvers: []assetIDResolver{
			resolveFromCompositeFieldID,
			resolveFromFlowDefault,
		},
	}
}

// Record persists one response per usable submitted field. Fields with blank
// identifiers or nil/empty values are skipped. Gap linkage is set when the
// field matches a pending gap in the index; such a response is the channel
// through which the resolved value later reaches the asset.
func (r *responseRecorder) Record(tx dbmodel.TxInterface, flowID, questionnaireID string,
	answers map[string]interface{}, meta model.SubmissionMetadata, respondedBy string,
	index *gap.GapIndex, respondedAt time.Time) ([]model.QuestionnaireResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ResponseRecorder"))

	responses := make([]model.QuestionnaireResponse, 0, len(answers))
	for fieldID, value := range answers {
		if !gap.AnswerableField(fieldID, value) {
			continue
		}

		serialized, err := serializeResponseValue(value)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize value for field %s: %w", fieldID, err)
		}

		response := model.QuestionnaireResponse{
			ID:               sysutils.GenerateUUID(),
			CollectionFlowID: flowID,
			QuestionnaireID:  questionnaireID,
			AssetID:          r.resolveAssetID(fieldID, meta),
			QuestionID:       fieldID,
			ResponseValue:    serialized,
			ResponseType:     DetermineResponseType(value),
			ValidationStatus: constants.ValidationStatusPending,
			RespondedBy:      respondedBy,
			RespondedAt:      respondedAt,
		}

		if g, ok := index.Lookup(fieldID); ok {
			response.GapID = g.ID
		}
		if response.AssetID == "" {
			logger.Debug("No asset reference resolvable for field",
				log.String("fieldId", fieldID))
		}

		if err := r.questionnaireStore.InsertResponseTx(tx, response); err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}

	return responses, nil
}

// resolveAssetID runs the resolver chain until one yields a non-empty result.
func (r *responseRecorder) resolveAssetID(fieldID string, meta model.SubmissionMetadata) string {
	for _, resolve := range r.assetResolvers {
		if assetID := resolve(fieldID, meta); assetID != "" {
			return assetID
		}
	}
	return ""
}

// DetermineResponseType derives the response type from the value's runtime shape.
func DetermineResponseType(value interface{}) string {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Bool:
		return constants.ResponseTypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return constants.ResponseTypeNumber
	case reflect.Map:
		return constants.ResponseTypeObject
	case reflect.Slice, reflect.Array:
		return constants.ResponseTypeArray
	default:
		return constants.ResponseTypeText
	}
}

// serializeResponseValue renders the submitted value for storage: structured
// values as JSON, scalars as their plain string form.
func serializeResponseValue(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case map[string]interface{}, []interface{}:
		serialized, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(serialized), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}
