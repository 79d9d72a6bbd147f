package clean

import "testing"

func TestCanonicalDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		// Era notation.
		{"令和3年7月4日", "2021-07-04", true},
		{"令和元年5月1日", "2019-05-01", true},
		{"平成31年4月1日", "2019-04-01", true},
		{"平成元年1月8日", "1989-01-08", true},
		{"昭和64年1月7日", "1989-01-07", true},
		{"大正15年12月25日", "1926-12-25", true},
		{"明治45年7月30日", "1912-07-30", true},

		// Western notation.
		{"2021年7月4日", "2021-07-04", true},
		{"2021-07-04", "2021-07-04", true},
		{"2021/7/4", "2021-07-04", true},
		{"2021.07.04", "2021-07-04", true},

		// Embedded in surrounding text.
		{"投票日: 令和3年7月4日(日)", "2021-07-04", true},
		{"任期満了 2023年4月30日まで", "2023-04-30", true},

		// Unparseable.
		{"", "", false},
		{"unknown", "", false},
		{"毎月第一月曜日", "", false},
		{"2021年", "", false},

		// Calendar-invalid.
		{"2021年2月30日", "", false},
		{"令和3年13月1日", "", false},
		{"2021-00-04", "", false},
	}

	for _, tt := range tests {
		got, ok := CanonicalDate(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("CanonicalDate(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
