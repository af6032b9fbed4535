package pdf

// FormatQuantity expone el helper para las pruebas del paquete externo.
var FormatQuantity = formatQuantity
