package content

import "io/fs"

type Loader interface {
	Load(fsys fs.FS) (Catalog, error)
}
