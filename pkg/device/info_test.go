package device

import "testing"

func TestAttributes_Merge(t *testing.T) {
	tests := []struct {
		name     string
		primary  Attributes
		fallback Attributes
		want     Attributes
	}{
		{
			name:     "primary serial wins",
			primary:  Attributes{Serial: "X"},
			fallback: Attributes{Serial: "Y"},
			want:     Attributes{Serial: "X"},
		},
		{
			name:     "empty primary takes fallback",
			primary:  Attributes{},
			fallback: Attributes{Serial: "Y", VendorID: "1a86", Description: "USB Single Serial"},
			want:     Attributes{Serial: "Y", VendorID: "1a86", Description: "USB Single Serial"},
		},
		{
			name:     "fields merge independently",
			primary:  Attributes{VendorID: "1a86", Product: "USB Single Serial"},
			fallback: Attributes{VendorID: "ffff", ProductID: "55d3", Manufacturer: "QinHeng"},
			want:     Attributes{VendorID: "1a86", ProductID: "55d3", Manufacturer: "QinHeng", Product: "USB Single Serial"},
		},
		{
			name: "both empty",
			want: Attributes{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.primary.Merge(tt.fallback)
			if got != tt.want {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
