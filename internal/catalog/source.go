// Package catalog loads the recommendable places shown in the explore view.
// A Source is read once per process; the service layer owns caching and
// the connection-error fallback.
package catalog

import (
	"context"

	"github.com/pkordes/wanderlust/internal/domain"
)

// Source fetches the full place catalog.
type Source interface {
	Fetch(ctx context.Context) ([]domain.Place, error)
}

// StaticSource serves a fixed list of places. It backs offline runs and tests.
type StaticSource struct {
	Places []domain.Place
}

// NewStaticSource returns a StaticSource over the built-in places.
func NewStaticSource() *StaticSource {
	return &StaticSource{Places: BuiltinPlaces()}
}

// Fetch returns a copy of the configured places.
func (s *StaticSource) Fetch(_ context.Context) ([]domain.Place, error) {
	out := make([]domain.Place, len(s.Places))
	copy(out, s.Places)
	return out, nil
}

func mapsSearch(q string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + q
}

// BuiltinPlaces returns the bundled catalog: Okinawa highlights plus one
// entry each for Osaka and Tokyo.
func BuiltinPlaces() []domain.Place {
	return []domain.Place{
		{ID: "ok_01", City: "沖繩", Keyword: "Okinawa", Category: domain.CategoryFun, Icon: "🐠", Title: "美麗海水族館", Location: "國頭郡本部町", Description: "擁有巨大黑潮之海，鯨鯊與鬼蝠魟是必看鎮館之寶。", MapsLink: mapsSearch("Okinawa+Churaumi+Aquarium")},
		{ID: "ok_02", City: "沖繩", Keyword: "Okinawa", Category: domain.CategoryShopping, Icon: "🎡", Title: "美國村 (American Village)", Location: "中頭郡北谷町", Description: "充滿美式風情的購物娛樂區，日落海灘夕陽絕美。", MapsLink: mapsSearch("American+Village+Okinawa")},
		{ID: "ok_03", City: "沖繩", Keyword: "Okinawa", Category: domain.CategoryShopping, Icon: "🛍️", Title: "國際通 (Kokusai Dori)", Location: "那霸市", Description: "那霸最熱鬧的奇蹟一英哩，伴手禮、泡盛、美食聚集地。", MapsLink: mapsSearch("Kokusai+Dori")},
		{ID: "ok_04", City: "沖繩", Keyword: "Okinawa", Category: domain.CategoryScenery, Icon: "🐘", Title: "萬座毛", Location: "國頭郡恩納村", Description: "隆起珊瑚礁形成的懸崖，形狀像大象鼻子，海景壯觀。", MapsLink: mapsSearch("Cape+Manzamo")},
		{ID: "ok_05", City: "沖繩", Keyword: "Okinawa", Category: domain.CategoryScenery, Icon: "⛩️", Title: "波上宮", Location: "那霸市", Description: "建在懸崖上的神社，是沖繩八社之首，旁邊即是海灘。", MapsLink: mapsSearch("Naminoue+Shrine")},
		{ID: "ok_06", City: "沖繩", Keyword: "Okinawa", Category: domain.CategoryFood, Icon: "🍜", Title: "暖暮拉麵", Location: "那霸市", Description: "九州風味的濃郁豚骨拉麵，沖繩人氣排隊名店。", MapsLink: mapsSearch("Danbo+Ramen+Okinawa")},
		{ID: "ok_07", City: "沖繩", Keyword: "Okinawa", Category: domain.CategoryScenery, Icon: "🏝️", Title: "古宇利島", Location: "國頭郡今歸仁村", Description: "以清澈的「古宇利藍」海水與心形岩聞名的戀之島。", MapsLink: mapsSearch("Kouri+Island")},
		{ID: "ok_08", City: "沖繩", Keyword: "Okinawa", Category: domain.CategoryShopping, Icon: "🛍️", Title: "Ashibinaa Outlet", Location: "豐見城市", Description: "沖繩最大的名牌折扣購物中心，鄰近機場。", MapsLink: mapsSearch("Ashibinaa+Outlet")},
		{ID: "osaka_1", City: "大阪", Keyword: "Osaka", Category: domain.CategoryFood, Icon: "🦀", Title: "道頓堀", Location: "中央區", Description: "大阪美食一級戰區，固力果跑跑人必拍。", MapsLink: mapsSearch("Dotonbori+Osaka")},
		{ID: "tokyo_1", City: "東京", Keyword: "Tokyo", Category: domain.CategoryScenery, Icon: "🗼", Title: "東京鐵塔", Location: "港區", Description: "經典紅白地標，浪漫城市景觀。", MapsLink: mapsSearch("Tokyo+Tower")},
	}
}
