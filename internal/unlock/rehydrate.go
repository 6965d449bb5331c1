package unlock

import (
	"fmt"
	"sort"
	"strings"

	kerrors "github.com/PolarWolf314/sitelock/internal/errors"
	"github.com/PolarWolf314/sitelock/internal/site"
)

// AssetRef pairs a site path with the object reference minted for it.
type AssetRef struct {
	Path string
	URL  string
}

// Rehydrate mints a reference for every asset, rewrites index.html to
// point at them and replaces the document.
func Rehydrate(doc Document, objects ObjectStore, files site.FileMap) error {
	index, ok := files.Index()
	if !ok {
		return kerrors.ErrMissingIndex
	}

	refs, err := CreateAssetRefs(objects, files)
	if err != nil {
		return err
	}

	doc.Replace(RewriteReferences(index.Content, refs))
	return nil
}

// CreateAssetRefs mints one reference per non-index record, typed by
// site.MIMEType. Longer paths come first so that a path which is a suffix
// of another ("app.js", "assets/app.js") cannot clobber it.
func CreateAssetRefs(objects ObjectStore, files site.FileMap) ([]AssetRef, error) {
	paths := files.Paths()
	sort.SliceStable(paths, func(i, j int) bool {
		return len(paths[i]) > len(paths[j])
	})

	refs := make([]AssetRef, 0, len(paths))
	for _, p := range paths {
		if p == site.IndexPath {
			continue
		}

		data, err := files[p].Bytes()
		if err != nil {
			return nil, err
		}

		url, err := objects.CreateObjectURL(data, site.MIMEType(p))
		if err != nil {
			return nil, fmt.Errorf("creating reference for %s: %w", p, err)
		}
		refs = append(refs, AssetRef{Path: p, URL: url})
	}

	return refs, nil
}

// RewriteReferences replaces, for each ref in order, every occurrence of
// ./<path>, /<path> and "<path>" with the reference. Other text is left
// alone.
func RewriteReferences(html string, refs []AssetRef) string {
	for _, ref := range refs {
		html = strings.ReplaceAll(html, "./"+ref.Path, ref.URL)
		html = strings.ReplaceAll(html, "/"+ref.Path, ref.URL)
		html = strings.ReplaceAll(html, `"`+ref.Path+`"`, `"`+ref.URL+`"`)
	}
	return html
}
