package internalcheck

import (
	"fmt"

	"golang.org/x/tools/go/packages"
)

// checkedPackages lists the import paths covered by the policy tests.
var checkedPackages = []string{
	"github.com/coinbase/cb-schnorr-go/pkg/schnorrkey",
	"github.com/coinbase/cb-schnorr-go/pkg/logging",
}

// loadChecked parses and type-checks the checked packages.
func loadChecked() ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles | packages.NeedName,
	}
	pkgs, err := packages.Load(cfg, checkedPackages...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	var loadErrs []error
	packages.Visit(pkgs, nil, func(p *packages.Package) {
		for _, e := range p.Errors {
			loadErrs = append(loadErrs, e)
		}
	})
	if len(loadErrs) > 0 {
		return nil, fmt.Errorf("load packages: %v", loadErrs)
	}
	return pkgs, nil
}
