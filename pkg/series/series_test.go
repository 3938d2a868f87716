package series

import "testing"

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values Series
		want   string
	}{
		{
			"empty input",
			nil,
			"[时序] 无输入",
		},
		{
			"single value is flat",
			Series{3.5},
			"[时序] 点数: 1, 范围: [3.50, 3.50], 均值: 3.50, 趋势: 持平, 示例: 3.50",
		},
		{
			"rising trend",
			Series{1, 2, 4},
			"[时序] 点数: 3, 范围: [1.00, 4.00], 均值: 2.33, 趋势: 上升, 示例: 1.00, 2.00, 4.00",
		},
		{
			"falling trend",
			Series{4, 8, 1},
			"[时序] 点数: 3, 范围: [1.00, 8.00], 均值: 4.33, 趋势: 下降, 示例: 4.00, 8.00, 1.00",
		},
		{
			"flat endpoints",
			Series{2, 9, 2},
			"[时序] 点数: 3, 范围: [2.00, 9.00], 均值: 4.33, 趋势: 持平, 示例: 2.00, 9.00, 2.00",
		},
		{
			"sample capped at eight",
			Series{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			"[时序] 点数: 10, 范围: [1.00, 10.00], 均值: 5.50, 趋势: 上升, " +
				"示例: 1.00, 2.00, 3.00, 4.00, 5.00, 6.00, 7.00, 8.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.values); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
