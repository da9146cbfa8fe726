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

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/migrata/compass/internal/questionnaire/constants"
)

type AdaptiveQuestionnaireTestSuite struct {
	suite.Suite
}

func TestAdaptiveQuestionnaireSuite(t *testing.T) {
	suite.Run(t, new(AdaptiveQuestionnaireTestSuite))
}

func (suite *AdaptiveQuestionnaireTestSuite) TestTargetAssetIDsDirectReference() {
	q := AdaptiveQuestionnaire{
		AssetID: "asset-1",
		Questions: []Question{
			{TargetGaps: []TargetGap{{GapID: "gap-1", AssetID: "asset-2"}}},
		},
	}

	assert.Equal(suite.T(), []string{"asset-1"}, q.TargetAssetIDs())
}

func (suite *AdaptiveQuestionnaireTestSuite) TestTargetAssetIDsFromGapTargets() {
	q := AdaptiveQuestionnaire{
		Questions: []Question{
			{TargetGaps: []TargetGap{
				{GapID: "gap-1", AssetID: "asset-1"},
				{GapID: "gap-2", AssetID: "asset-2"},
			}},
			{TargetGaps: []TargetGap{
				{GapID: "gap-3", AssetID: "asset-1"},
				{GapID: "gap-4"},
			}},
		},
	}

	assert.ElementsMatch(suite.T(), []string{"asset-1", "asset-2"}, q.TargetAssetIDs())
}

func (suite *AdaptiveQuestionnaireTestSuite) TestTargetAssetIDsEmpty() {
	q := AdaptiveQuestionnaire{}
	assert.Empty(suite.T(), q.TargetAssetIDs())
}

func (suite *AdaptiveQuestionnaireTestSuite) TestBenignFailure() {
	testCases := []struct {
		name     string
		q        AdaptiveQuestionnaire
		expected bool
	}{
		{
			"completed questionnaire never benign",
			AdaptiveQuestionnaire{CompletionStatus: constants.CompletionStatusCompleted},
			false,
		},
		{
			"failed with no-gaps reason",
			AdaptiveQuestionnaire{
				CompletionStatus: constants.CompletionStatusFailed,
				GenerationReason: constants.GenerationReasonNoGapsFound,
			},
			true,
		},
		{
			"failed with generation error reason",
			AdaptiveQuestionnaire{
				CompletionStatus: constants.CompletionStatusFailed,
				GenerationReason: constants.GenerationReasonError,
			},
			false,
		},
		{
			"legacy row with no-true-gaps description",
			AdaptiveQuestionnaire{
				CompletionStatus: constants.CompletionStatusFailed,
				Description:      "No true gaps detected for this asset",
			},
			true,
		},
		{
			"legacy row with generation-failed description",
			AdaptiveQuestionnaire{
				CompletionStatus: constants.CompletionStatusFailed,
				Description:      "questionnaire generation failed",
			},
			true,
		},
		{
			"legacy row with questions is a real failure",
			AdaptiveQuestionnaire{
				CompletionStatus: constants.CompletionStatusFailed,
				Description:      "no true gaps",
				Questions:        []Question{{ID: "q1"}},
			},
			false,
		},
		{
			"legacy row with unrelated description",
			AdaptiveQuestionnaire{
				CompletionStatus: constants.CompletionStatusFailed,
				Description:      "timed out",
			},
			false,
		},
		{
			"pending questionnaire",
			AdaptiveQuestionnaire{CompletionStatus: constants.CompletionStatusPending},
			false,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			assert.Equal(suite.T(), tc.expected, tc.q.BenignFailure())
		})
	}
}
