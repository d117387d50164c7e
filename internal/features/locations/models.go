// Package locations реализует общий граф локаций: четырёхуровневую
// иерархию континент → страна → штат → город, в которую посты ссылаются
// по id. models.go описывает узлы графа и транзиентный ввод формы.
package locations

import "time"

// Kind — уровень узла в иерархии. Узел — размеченное объединение:
// смысл полей имён и родительских id определяется только Kind,
// проверок «а есть ли поле» в коде нет, везде исчерпывающий switch.
type Kind string

const (
	KindContinent Kind = "CONTINENT"
	KindCountry   Kind = "COUNTRY"
	KindState     Kind = "STATE"
	KindCity      Kind = "CITY"
)

// Node — узел графа локаций в коллекции locations.
//
// Заполненность полей по Kind:
//   - CONTINENT: continent
//   - COUNTRY:   country, continent + continentId
//   - STATE:     state, country, continent + countryId, continentId
//   - CITY:      city, [state], country, continent + [stateId], countryId, continentId
//
// Штат опционален: город может ссылаться на страну напрямую.
// Узлы создаются лениво и после создания не мутируются
// (слияние дублей — отдельная фоновая задача).
type Node struct {
	ID   string `json:"-"`
	Kind Kind   `json:"kind"`

	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Country   string `json:"country,omitempty"`
	Continent string `json:"continent,omitempty"`

	StateID     string `json:"stateId,omitempty"`
	CountryID   string `json:"countryId,omitempty"`
	ContinentID string `json:"continentId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Entry — транзиентный ввод формы создания поста: свободный текст
// по уровням плюс четыре «заявленных» id из автокомплита. Заявка —
// это только мнение клиента о совпадении с существующим узлом,
// до использования она перепроверяется.
type Entry struct {
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	Country   string `json:"country"`
	Continent string `json:"continent"`

	CityID      string `json:"cityId,omitempty"`
	StateID     string `json:"stateId,omitempty"`
	CountryID   string `json:"countryId,omitempty"`
	ContinentID string `json:"continentId,omitempty"`
}

// Resolved — подтверждённая цепочка локации, которая сохраняется в посте.
// Все id указывают на существующие (возможно только что созданные) узлы,
// тексты канонические.
type Resolved struct {
	CityID      string `json:"cityId"`
	StateID     string `json:"stateId,omitempty"`
	CountryID   string `json:"countryId"`
	ContinentID string `json:"continentId"`

	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	Country   string `json:"country"`
	Continent string `json:"continent"`
}
