package categorizer

// Категории, от которых зависят показатели долговой нагрузки и поведения
const (
	CategorySalary        = "Salary"
	CategoryLoanRepayment = "Loan Repayment"
	CategoryOverdraft     = "Overdraft"
)

// Rule сопоставляет подстроку описания операции с категорией
type Rule struct {
	Key      string
	Category string
}

// defaultRules порядок важен: при нескольких совпадениях побеждает первое правило
var defaultRules = []Rule{
	// Продукты
	{"walmart", "Groceries"},
	{"costco", "Groceries"},
	{"safeway", "Groceries"},
	{"kroger", "Groceries"},
	{"trader joe's", "Groceries"},
	{"whole foods", "Groceries"},

	// Рестораны и кафе
	{"mcdonald's", "Restaurants"},
	{"starbucks", "Coffee Shops"},
	{"subway", "Restaurants"},
	{"taco bell", "Restaurants"},
	{"doordash", "Food Delivery"},
	{"uber eats", "Food Delivery"},
	{"grubhub", "Food Delivery"},

	// Транспорт
	{"uber", "Ride Sharing"},
	{"lyft", "Ride Sharing"},
	{"chevron", "Gas & Fuel"},
	{"shell", "Gas & Fuel"},
	{"exxon", "Gas & Fuel"},
	{"bart", "Public Transit"},
	{"amtrak", "Travel"},

	// Покупки
	{"amazon", "Shopping"},
	{"amzn", "Shopping"},
	{"target", "Shopping"},
	{"best buy", "Electronics"},
	{"apple", "Electronics"},
	{"home depot", "Home Improvement"},

	// Счета и коммунальные услуги
	{"comcast", "Bills & Utilities"},
	{"verizon", "Bills & Utilities"},
	{"at&t", "Bills & Utilities"},
	{"pg&e", "Bills & Utilities"},
	{"netflix", "Subscriptions"},
	{"spotify", "Subscriptions"},
	{"hulu", "Subscriptions"},

	// Здоровье
	{"cvs", "Pharmacy"},
	{"walgreens", "Pharmacy"},
	{"24 hour fitness", "Gym"},

	// Развлечения
	{"amc theatres", "Entertainment"},
	{"cinemark", "Entertainment"},
	{"steam", "Games"},

	// Путешествия
	{"airbnb", "Travel"},
	{"expedia", "Travel"},
	{"united airlines", "Travel"},
	{"delta air lines", "Travel"},

	// Доходы
	{"salary", CategorySalary},
	{"sal cr", CategorySalary},
	{"payroll", CategorySalary},
	{"wages", CategorySalary},

	// Кредиты
	{"loan", CategoryLoanRepayment},
	{"emi payment", CategoryLoanRepayment},
	{"emi debit", CategoryLoanRepayment},
	{"nach emi", CategoryLoanRepayment},
	{"instalment", CategoryLoanRepayment},
	{"installment", CategoryLoanRepayment},
	{"mortgage", CategoryLoanRepayment},
	{"credit card payment", CategoryLoanRepayment},
	{"cc payment", CategoryLoanRepayment},

	// Овердрафт
	{"overdraft", CategoryOverdraft},
	{"od interest", CategoryOverdraft},
	{"od charges", CategoryOverdraft},

	// Азартные игры
	{"casino", "Gambling"},
	{"lottery", "Gambling"},
}

// DefaultRules возвращает копию встроенной таблицы правил
func DefaultRules() []Rule {
	rules := make([]Rule, len(defaultRules))
	copy(rules, defaultRules)
	return rules
}
