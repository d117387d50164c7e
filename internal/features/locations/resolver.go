// Package locations — resolver.go: чистая логика сверки ввода с графом.
// Два прохода без записи: перепроверка заявленных id и подбор по именам.
// Третий проход (создание недостающего хвоста цепочки) живёт в service.go,
// потому что только он пишет в хранилище.
package locations

import (
	"github.com/tsonthalia/travel-guardians/internal/common"
)

// levels — уровни от самого точного к самому общему.
// Порядок важен: заявки проверяются от города к континенту.
var levels = []Kind{KindCity, KindState, KindCountry, KindContinent}

// claimID возвращает заявленный id нужного уровня.
func claimID(e *Entry, k Kind) string {
	switch k {
	case KindCity:
		return e.CityID
	case KindState:
		return e.StateID
	case KindCountry:
		return e.CountryID
	case KindContinent:
		return e.ContinentID
	}
	return ""
}

// setClaim записывает id уровня (пустая строка = снять заявку).
func setClaim(e *Entry, k Kind, id string) {
	switch k {
	case KindCity:
		e.CityID = id
	case KindState:
		e.StateID = id
	case KindCountry:
		e.CountryID = id
	case KindContinent:
		e.ContinentID = id
	}
}

// levelText возвращает текст, введённый для уровня.
func levelText(e *Entry, k Kind) string {
	switch k {
	case KindCity:
		return e.City
	case KindState:
		return e.State
	case KindCountry:
		return e.Country
	case KindContinent:
		return e.Continent
	}
	return ""
}

// namesMatch — совпадает ли узел с текстом формы на его уровне и всех
// более общих. Сравнение регистронезависимое; пустой штат совпадает
// только с пустым штатом: частичное совпадение (тот же город, другая
// страна) — это другая локация.
func namesMatch(n *Node, e *Entry) bool {
	switch n.Kind {
	case KindCity:
		return common.SameName(n.City, e.City) &&
			common.SameName(n.State, e.State) &&
			common.SameName(n.Country, e.Country) &&
			common.SameName(n.Continent, e.Continent)
	case KindState:
		return common.SameName(n.State, e.State) &&
			common.SameName(n.Country, e.Country) &&
			common.SameName(n.Continent, e.Continent)
	case KindCountry:
		return common.SameName(n.Country, e.Country) &&
			common.SameName(n.Continent, e.Continent)
	case KindContinent:
		return common.SameName(n.Continent, e.Continent)
	}
	return false
}

// adoptNode переносит в форму канонические тексты узла (его уровень и всё
// более общее) и известные узлу родительские id. Это исправляет дрейф
// регистра/опечаток: сохранённый пост совпадает с каноническим узлом
// побуквенно.
func adoptNode(e *Entry, n *Node) {
	switch n.Kind {
	case KindCity:
		e.City = n.City
		e.State = n.State
		e.Country = n.Country
		e.Continent = n.Continent
		setClaim(e, KindCity, n.ID)
		if n.StateID != "" {
			setClaim(e, KindState, n.StateID)
		}
		setClaim(e, KindCountry, n.CountryID)
		setClaim(e, KindContinent, n.ContinentID)
	case KindState:
		e.State = n.State
		e.Country = n.Country
		e.Continent = n.Continent
		setClaim(e, KindState, n.ID)
		setClaim(e, KindCountry, n.CountryID)
		setClaim(e, KindContinent, n.ContinentID)
	case KindCountry:
		e.Country = n.Country
		e.Continent = n.Continent
		setClaim(e, KindCountry, n.ID)
		setClaim(e, KindContinent, n.ContinentID)
	case KindContinent:
		e.Continent = n.Continent
		setClaim(e, KindContinent, n.ID)
	}
}

// revalidateClaims — первый проход: перепроверка заявленных id от города
// к континенту. Заявка снимается, если узла нет, его уровень не совпадает
// или его имена расходятся с текущим текстом формы. Снимается только
// провалившаяся заявка, остальная сверка продолжается — вызывающий код
// обязан переживать частичную инвалидацию.
func revalidateClaims(e *Entry, byID map[string]*Node) {
	for _, level := range levels {
		id := claimID(e, level)
		if id == "" {
			continue
		}

		n, ok := byID[id]
		if !ok || n.Kind != level || !namesMatch(n, e) {
			setClaim(e, level, "")
			continue
		}
		adoptNode(e, n)
	}
}

// backfillByName — второй проход: для уровней, оставшихся без id, ищем
// узел ровно этого уровня с совпадающими именами (уровень + всё более
// общее). Так пользователь, набравший новый город в существующей стране,
// цепляется к этой стране и без автокомплита.
func backfillByName(e *Entry, nodes []*Node) {
	for _, level := range levels {
		if claimID(e, level) != "" {
			continue
		}
		if levelText(e, level) == "" {
			continue // штат опционален
		}

		for _, n := range nodes {
			if n.Kind != level || !namesMatch(n, e) {
				continue
			}
			adoptNode(e, n)
			break
		}
	}
}
