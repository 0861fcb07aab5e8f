package storage

// BytesPerChunk is the size of one benchmark chunk (128^3 bytes).
const BytesPerChunk = 128 * 128 * 128

// Column names every benchmark result file is expected to carry.
const (
	ColumnBytesWritten     = "bytes_written"
	ColumnConsolidatedTime = "consolidated_time"
	ColumnVectorizedTime   = "vectorized_time"
	ColumnChunks           = "chunks"
)

// stagingSuffix names the table a file is loaded into before it replaces the dataset.
const stagingSuffix = "__loading"

const (
	// SQLLoadCSVTemplate materializes a CSV file as a table. Args: table, path literal.
	SQLLoadCSVTemplate = `CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv(%s, header = true, auto_detect = true);`

	// SQLAddChunksColumnTemplate adds the derived chunks column. Args: table.
	SQLAddChunksColumnTemplate = `ALTER TABLE %s ADD COLUMN chunks DOUBLE;`

	// SQLDropChunksColumnTemplate removes a chunks column that came with the file. Args: table.
	SQLDropChunksColumnTemplate = `ALTER TABLE %s DROP COLUMN chunks;`

	// SQLFillChunksTemplate derives chunks from bytes_written. Args: table, bytes per chunk.
	SQLFillChunksTemplate = `UPDATE %s SET chunks = CAST(bytes_written AS DOUBLE) / %d;`

	// SQLSelectAllTemplate reads a table back in file order. Args: table.
	SQLSelectAllTemplate = `SELECT * FROM %s ORDER BY rowid;`

	// SQLHeadTemplate reads the first rows of a table. Args: table, limit.
	SQLHeadTemplate = `SELECT * FROM %s ORDER BY rowid LIMIT %d;`

	// SQLDescribeTemplate lists the columns of a table. Args: table.
	SQLDescribeTemplate = `DESCRIBE %s;`

	// SQLChunkRangeTemplate returns row count and chunk range. Args: table.
	SQLChunkRangeTemplate = `SELECT COUNT(*), MIN(chunks), MAX(chunks) FROM %s;`

	// SQLDropTableTemplate drops a table if it exists. Args: table.
	SQLDropTableTemplate = `DROP TABLE IF EXISTS %s;`

	// SQLRenameTableTemplate moves a staged table to its final name. Args: table, new name.
	SQLRenameTableTemplate = `ALTER TABLE %s RENAME TO %s;`

	// SQLExportTemplate copies a query result to a file. Args: query, path literal, options.
	SQLExportTemplate = `COPY (%s) TO %s (%s);`

	// SQLSelectTaggedTemplate selects a table tagged with its dataset name. Args: name literal, table.
	SQLSelectTaggedTemplate = `SELECT %s AS dataset, * FROM %s`
)
