// Package all links every storage backend into a binary. Each backend
// registers its factory and DDL dialect in init, so importing this package
// for side effects is enough:
//
//	import _ "playeretl/internal/storage/all"
package all

import (
	_ "playeretl/internal/storage/mssql"
	_ "playeretl/internal/storage/postgres"
	_ "playeretl/internal/storage/sqlite"
)
