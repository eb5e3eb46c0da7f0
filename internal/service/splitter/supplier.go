package splitter

import (
	"strings"

	"service-rider-platform/internal/domain"
)

const (
	unknownSupplierName = "Unknown Supplier"
	noAddress           = "Address not available"
)

type supplierInfo struct {
	name    string
	address *domain.Address
}

func resolveSupplier(it domain.OrderItem) supplierInfo {
	if len(it.Supplier) > 0 {
		s := it.Supplier[0]
		info := supplierInfo{name: strings.TrimSpace(s.FirstName)}
		if len(s.Addresses) > 0 {
			addr := s.Addresses[0]
			info.address = &addr
		}
		if info.name == "" {
			info.name = productLabel(it)
		}
		return info
	}
	return supplierInfo{name: productLabel(it)}
}

func productLabel(it domain.OrderItem) string {
	if name := strings.TrimSpace(it.Product.Name); name != "" {
		return name
	}
	return unknownSupplierName
}

// FormatAddress joins the non-empty address parts with ", ".
func FormatAddress(a *domain.Address) string {
	if a == nil {
		return noAddress
	}
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.City, a.State, a.ZipCode, a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return noAddress
	}
	return strings.Join(parts, ", ")
}
