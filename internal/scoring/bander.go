package scoring

// BaseFee 课程原价,单位为整数卢比
const BaseFee = 45000

// Scholarship 奖学金方案,所有金额均为整数
type Scholarship struct {
	Percentage  int `json:"percentage"`
	Amount      int `json:"amount"`
	FinalFee    int `json:"finalFee"`
	OriginalFee int `json:"originalFee"`
}

// band 分数档位,按 Min 降序排列,首个命中的档位生效
type band struct {
	Min        int
	Percentage int
}

var bands = []band{
	{Min: 90, Percentage: 100},
	{Min: 80, Percentage: 60},
	{Min: 70, Percentage: 50},
	{Min: 50, Percentage: 40},
	{Min: 35, Percentage: 25},
	{Min: 0, Percentage: 15},
}

// Band 根据最终百分比计算奖学金方案,任何分数都至少命中保底档
func Band(percentage int) Scholarship {
	pct := bands[len(bands)-1].Percentage
	for _, b := range bands {
		if percentage >= b.Min {
			pct = b.Percentage
			break
		}
	}
	amount := BaseFee * pct / 100
	return Scholarship{
		Percentage:  pct,
		Amount:      amount,
		FinalFee:    BaseFee - amount,
		OriginalFee: BaseFee,
	}
}
