package table

import (
	"github.com/go-jet/jet/v2/sqlite"
)

var ProbeResults = newProbeResultsTable("", "probe_results", "")

type probeResultsTable struct {
	sqlite.Table

	// Columns
	ID             sqlite.ColumnInteger
	RunID          sqlite.ColumnString
	Proxy          sqlite.ColumnString
	ProxyType      sqlite.ColumnString
	Status         sqlite.ColumnString
	Anonymity      sqlite.ColumnString
	ResponseTimeMs sqlite.ColumnInteger
	Speed          sqlite.ColumnString
	Country        sqlite.ColumnString
	ErrorMessage   sqlite.ColumnString
	CheckedAt      sqlite.ColumnTimestamp

	AllColumns     sqlite.ColumnList
	MutableColumns sqlite.ColumnList
}

type ProbeResultsTable struct {
	probeResultsTable

	EXCLUDED probeResultsTable
}

// AS creates new ProbeResultsTable with assigned alias
func (a ProbeResultsTable) AS(alias string) *ProbeResultsTable {
	return newProbeResultsTable(a.SchemaName(), a.TableName(), alias)
}

func newProbeResultsTable(schemaName, tableName, alias string) *ProbeResultsTable {
	return &ProbeResultsTable{
		probeResultsTable: newProbeResultsTableImpl(schemaName, tableName, alias),
		EXCLUDED:          newProbeResultsTableImpl("", "excluded", ""),
	}
}

func newProbeResultsTableImpl(schemaName, tableName, alias string) probeResultsTable {
	var (
		IDColumn             = sqlite.IntegerColumn("id")
		RunIDColumn          = sqlite.StringColumn("run_id")
		ProxyColumn          = sqlite.StringColumn("proxy")
		ProxyTypeColumn      = sqlite.StringColumn("proxy_type")
		StatusColumn         = sqlite.StringColumn("status")
		AnonymityColumn      = sqlite.StringColumn("anonymity")
		ResponseTimeMsColumn = sqlite.IntegerColumn("response_time_ms")
		SpeedColumn          = sqlite.StringColumn("speed")
		CountryColumn        = sqlite.StringColumn("country")
		ErrorMessageColumn   = sqlite.StringColumn("error_message")
		CheckedAtColumn      = sqlite.TimestampColumn("checked_at")
		allColumns           = sqlite.ColumnList{IDColumn, RunIDColumn, ProxyColumn, ProxyTypeColumn, StatusColumn, AnonymityColumn, ResponseTimeMsColumn, SpeedColumn, CountryColumn, ErrorMessageColumn, CheckedAtColumn}
		mutableColumns       = sqlite.ColumnList{RunIDColumn, ProxyColumn, ProxyTypeColumn, StatusColumn, AnonymityColumn, ResponseTimeMsColumn, SpeedColumn, CountryColumn, ErrorMessageColumn, CheckedAtColumn}
	)

	return probeResultsTable{
		Table: sqlite.NewTable(schemaName, tableName, alias, allColumns...),

		//Columns
		ID:             IDColumn,
		RunID:          RunIDColumn,
		Proxy:          ProxyColumn,
		ProxyType:      ProxyTypeColumn,
		Status:         StatusColumn,
		Anonymity:      AnonymityColumn,
		ResponseTimeMs: ResponseTimeMsColumn,
		Speed:          SpeedColumn,
		Country:        CountryColumn,
		ErrorMessage:   ErrorMessageColumn,
		CheckedAt:      CheckedAtColumn,

		AllColumns:     allColumns,
		MutableColumns: mutableColumns,
	}
}
