package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	DBVacuumError

	// Schema errors
	SchemaReadMigrationsError
	SchemaVersionError
	SchemaMigrateError
	SchemaTooNewError

	// Store validation errors
	StoreValidationError
	StoreUnknownTaxonomyError
	StoreImageLimitError

	// Store lookup errors
	StoreItemNotFoundError
	StoreImageNotFoundError
	StoreLookupNotFoundError
	StoreLookupDuplicateError
	StoreLookupInUseError

	// Store storage errors
	StoreQueryError
	StoreWriteError

	// Seed errors
	SeedReadError
	SeedInsertError

	// Report and export errors
	ReportFormatError
	ReportEncodeError
	ExportEmptyCatalogError

	// Verify errors
	VerifyImagesError
)
