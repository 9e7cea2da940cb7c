package knowledge

import (
	"time"

	"github.com/williamleo0369-ux/quant-monitor-sub001/date"
)

// DefaultArticles returns the articles a new knowledge base starts with.
func DefaultArticles() []Article {
	return []Article{
		{
			ID: 1, Title: "双均线策略详解：从原理到实践", Category: "交易策略", Type: TypeArticle,
			Views: 1256, Starred: true, Date: date.New(2024, time.January, 10),
			Tags: []string{"趋势跟踪", "量化交易"},
			Content: `# 双均线策略

双均线策略用一条**短期均线**和一条**长期均线**判断趋势：

- 短期均线上穿长期均线（金叉）时买入；
- 短期均线下穿长期均线（死叉）时卖出。

| 参数 | 常用取值 |
|------|---------|
| 短期 | 5 日 |
| 长期 | 20 日 |

震荡行情中信号频繁，需要配合过滤条件使用。
`,
		},
		{
			ID: 2, Title: "MACD指标的高级应用技巧", Category: "技术分析", Type: TypeArticle,
			Views: 987, Date: date.New(2024, time.January, 8),
			Tags: []string{"趋势跟踪"},
			Content: `# MACD

MACD 由 DIF、DEA 与柱状线组成。

1. 零轴上方的金叉强于零轴下方的金叉；
2. 价格新高而 MACD 未新高时形成**顶背离**；
3. 柱状线缩短往往领先于交叉信号。
`,
		},
		{
			ID: 3, Title: "如何分析上市公司财务报表", Category: "基本面分析", Type: TypeVideo,
			Views: 2345, Starred: true, Date: date.New(2024, time.January, 5),
			Tags: []string{"Alpha因子"},
			Content: `# 财务报表分析

重点关注三张表：

- 资产负债表：偿债能力与资本结构；
- 利润表：收入质量与毛利率；
- 现金流量表：经营现金流是否覆盖净利润。
`,
		},
		{
			ID: 4, Title: "VaR模型在风险控制中的应用", Category: "风险管理", Type: TypeArticle,
			Views: 756, Date: date.New(2024, time.January, 3),
			Tags: []string{"风险平价"},
			Content: "# VaR\n\n在 95% 置信度下，组合一日内的最大损失不超过 `VaR`。\n\n" +
				"历史模拟法不依赖分布假设，但对样本区间敏感。\n",
		},
		{
			ID: 5, Title: "因子投资入门指南", Category: "量化方法", Type: TypeArticle,
			Views: 1567, Starred: true, Date: date.New(2024, time.January, 1),
			Tags: []string{"Alpha因子", "量化交易", "机器学习"},
			Content: `# 因子投资

常见因子包括价值、动量、质量与低波动。

> 因子的有效性需要在样本外持续检验。
`,
		},
	}
}
