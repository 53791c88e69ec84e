package main

// @title           PDV Conveniência API
// @version         1.0
// @description     API de ponto de venda para lojas de conveniência: catálogo, caixa, vendas, convênio de clientes e compras

// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
