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

package client

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/migrata/compass/internal/system/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type DBClientTestSuite struct {
	suite.Suite
	mockDB   *sql.DB
	mock     sqlmock.Sqlmock
	dbClient DBClientInterface
}

func TestDBClientSuite(t *testing.T) {
	suite.Run(t, new(DBClientTestSuite))
}

func (suite *DBClientTestSuite) SetupTest() {
	var err error
	suite.mockDB, suite.mock, err = sqlmock.New()
	if err != nil {
		suite.T().Fatalf("Failed to create mock database: %v", err)
	}

	db := model.NewDB(suite.mockDB)
	suite.dbClient = NewDBClient(db, "mock")
}

func (suite *DBClientTestSuite) TearDownTest() {
	if suite.mock != nil {
		if err := suite.mock.ExpectationsWereMet(); err != nil {
			suite.T().Fatalf("There were unfulfilled expectations: %v", err)
		}
	}
}

func (suite *DBClientTestSuite) TestQuerySuccess() {
	testQuery := model.DBQuery{
		ID:    "test_query_success",
		Query: "SELECT GAP_ID, FIELD_NAME FROM COLLECTION_DATA_GAP WHERE FLOW_ID = ?",
	}
	args := []interface{}{"flow-1"}
	mockArgs := []driver.Value{"flow-1"}

	columns := []string{"GAP_ID", "FIELD_NAME"}
	rows := sqlmock.NewRows(columns).
		AddRow("gap-1", "region").
		AddRow("gap-2", "environment")
	suite.mock.ExpectQuery("SELECT GAP_ID, FIELD_NAME FROM COLLECTION_DATA_GAP WHERE FLOW_ID = ?").
		WithArgs(mockArgs...).
		WillReturnRows(rows)

	results, err := suite.dbClient.Query(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 2)
	// Column names are normalized to lowercase.
	assert.Equal(suite.T(), "gap-1", results[0]["gap_id"])
	assert.Equal(suite.T(), "region", results[0]["field_name"])
	assert.Equal(suite.T(), "gap-2", results[1]["gap_id"])
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestQueryEmptyResults() {
	testQuery := model.DBQuery{
		ID:    "test_query_empty",
		Query: "SELECT GAP_ID, FIELD_NAME FROM COLLECTION_DATA_GAP WHERE FLOW_ID = ?",
	}
	args := []interface{}{"missing-flow"}
	mockArgs := []driver.Value{"missing-flow"}

	rows := sqlmock.NewRows([]string{"GAP_ID", "FIELD_NAME"})
	suite.mock.ExpectQuery("SELECT GAP_ID, FIELD_NAME FROM COLLECTION_DATA_GAP WHERE FLOW_ID = ?").
		WithArgs(mockArgs...).
		WillReturnRows(rows)

	results, err := suite.dbClient.Query(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), results)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestQueryDatabaseError() {
	testQuery := model.DBQuery{
		ID:    "test_query_error",
		Query: "SELECT GAP_ID FROM NON_EXISTENT_TABLE",
	}

	expectedErr := errors.New("table not found")
	suite.mock.ExpectQuery("SELECT GAP_ID FROM NON_EXISTENT_TABLE").
		WillReturnError(expectedErr)

	results, err := suite.dbClient.Query(testQuery)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), expectedErr, err)
	assert.Nil(suite.T(), results)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestExecuteSuccess() {
	testQuery := model.DBQuery{
		ID:    "test_execute_success",
		Query: "UPDATE COLLECTION_DATA_GAP SET RESOLUTION_STATUS = ? WHERE GAP_ID = ?",
	}
	args := []interface{}{"resolved", "gap-1"}
	mockArgs := []driver.Value{"resolved", "gap-1"}

	suite.mock.ExpectExec("UPDATE COLLECTION_DATA_GAP SET RESOLUTION_STATUS = \\? WHERE GAP_ID = \\?").
		WithArgs(mockArgs...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rowsAffected, err := suite.dbClient.Execute(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), rowsAffected)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestExecuteDatabaseError() {
	testQuery := model.DBQuery{
		ID:    "test_execute_error",
		Query: "UPDATE COLLECTION_DATA_GAP SET RESOLUTION_STATUS = ?",
	}

	expectedErr := errors.New("constraint violation")
	suite.mock.ExpectExec("UPDATE COLLECTION_DATA_GAP SET RESOLUTION_STATUS = \\?").
		WillReturnError(expectedErr)

	rowsAffected, err := suite.dbClient.Execute(testQuery)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), expectedErr, err)
	assert.Equal(suite.T(), int64(0), rowsAffected)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestBeginTxCommit() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("UPDATE COLLECTION_DATA_GAP SET RESOLUTION_STATUS = \\?").
		WithArgs(driver.Value("resolved")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	tx, err := suite.dbClient.BeginTx()
	assert.NoError(suite.T(), err)

	result, err := tx.ExecQuery(model.DBQuery{
		ID:    "test_tx_exec",
		Query: "UPDATE COLLECTION_DATA_GAP SET RESOLUTION_STATUS = ?",
	}, "resolved")
	assert.NoError(suite.T(), err)
	rowsAffected, err := result.RowsAffected()
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), rowsAffected)

	assert.NoError(suite.T(), tx.Commit())
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestBeginTxRollback() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectRollback()

	tx, err := suite.dbClient.BeginTx()
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), tx.Rollback())
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestClose() {
	suite.mock.ExpectClose()
	assert.NoError(suite.T(), suite.dbClient.Close())
}
