package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Con existencia negativa o nula se toma el costo de la entrada.
func WeightedAverageCost(onHand int, currentCost decimal.Decimal, received int, receivedCost decimal.Decimal) decimal.Decimal {
	if received <= 0 {
		return currentCost
	}
	if onHand <= 0 {
		return receivedCost
	}
	stock := decimal.NewFromInt(int64(onHand))
	in := decimal.NewFromInt(int64(received))
	num := stock.Mul(currentCost).Add(in.Mul(receivedCost))
	return num.Div(stock.Add(in)).Round(2)
}

// SuggestedReorderQty cantidad a pedir para llevar la existencia al doble del mínimo.
func SuggestedReorderQty(onHand, minStock int) int {
	q := 2*minStock - onHand
	if q < 0 {
		return 0
	}
	return q
}
